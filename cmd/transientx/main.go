// Command transientx exercises persistent records built on the transientx
// mutation protocol: it runs batched edits, snapshots the sealed results and
// renders batch membership as Graphviz DOT.
package main

import "os"

func main() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}
