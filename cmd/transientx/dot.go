package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/production"
	"github.com/comalice/transientx/internal/records"
)

const sealedFlag = "sealed"

func newDotCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Render a record chain in the middle of an edit as Graphviz DOT",
		Long: `dot opens a mutation batch on a record chain, edits the root and its first
  child, and prints the structure graph. Nodes sharing a batch are clustered;
  the untouched tail of the chain stays shared with the frozen original.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sealed, err := cmd.Flags().GetBool(sealedFlag)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), e.renderDot(sealed))
			return nil
		},
	}
	cmd.Flags().Bool(sealedFlag, false, "seal the batch before rendering")
	return cmd
}

func (e *env) renderDot(sealed bool) string {
	original := buildChain("root", max(e.cfg.Demo.Depth, 1))
	m := transientx.Modify(original)
	m.Hit()
	m.EditChild(func(c *records.Record) { c.Tag("edited") })
	if sealed {
		m = transientx.Commit(m)
	}
	e.logger.Debug("rendering batch graph", "sealed", sealed, "tail", deepest(m).Name())

	dot := (&production.BatchVisualizer{}).ExportDOT(m)
	if !sealed {
		transientx.Commit(m)
	}
	return dot
}
