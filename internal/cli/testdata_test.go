package cli

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	tocio "github.com/matzehuels/tocview/pkg/io"
	"github.com/matzehuels/tocview/pkg/toc"
)

var cmpEmpty = cmpopts.EquateEmpty()

// sampleData is a three-column diagram with one dangling reference, one
// backward connection and one isolated node.
func sampleData() toc.Data {
	return toc.Data{Columns: []toc.Column{
		{Title: "Approaches", Nodes: []toc.Node{
			{ID: "advocacy", Title: "Advocacy", ConnectionIDs: []string{"policy", "ghost"}},
			{ID: "research", Title: "Research", Text: "Field studies in three regions", ConnectionIDs: []string{"evidence"}},
		}},
		{Title: "Outputs", Nodes: []toc.Node{
			{ID: "policy", Title: "Policy change", ConnectionIDs: []string{"outcome"}},
			{ID: "evidence", Title: "Evidence base", ConnectionIDs: []string{"advocacy"}},
			{ID: "lonely", Title: "Lonely"},
		}},
		{Title: "Impact", Nodes: []toc.Node{{ID: "outcome", Title: "Better outcomes"}}},
	}}
}

func sampleGraph(t *testing.T) *toc.Graph {
	t.Helper()
	g, err := toc.New(sampleData())
	if err != nil {
		t.Fatalf("toc.New() error: %v", err)
	}
	return g
}

// writeSample writes sampleData to dir/name and returns the path.
func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := tocio.Export(sampleData(), path); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	return path
}
