package stdlib_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/comalice/transientx"

// The protocol core and the token cell must build on the standard library
// alone; third-party deps live in the structural protocols and adapters.
func TestStdlibOnlyCore(t *testing.T) {
	for _, dir := range []string{"..", "primitives"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", dir, err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}
			path := filepath.Join(dir, name)
			f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("Failed to parse %s: %v", path, err)
			}
			for _, imp := range f.Imports {
				p, _ := strconv.Unquote(imp.Path.Value)
				if p == modulePath+"/internal/primitives" {
					continue
				}
				if first, _, _ := strings.Cut(p, "/"); strings.Contains(first, ".") {
					t.Errorf("Non-stdlib import in %s: %s", path, p)
				}
			}
		}
	}
}
