package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/render/nodelink"
	"github.com/matzehuels/tocview/pkg/toc"
)

func ExampleToDOT() {
	g, _ := toc.New(toc.Data{Columns: []toc.Column{
		{Title: "Inputs", Nodes: []toc.Node{{ID: "funding", Title: "Funding", ConnectionIDs: []string{"staff"}}}},
		{Title: "Outputs", Nodes: []toc.Node{{ID: "staff", Title: "Staff hired"}}},
	}})

	dot := nodelink.ToDOT(g, highlight.Snapshot{}, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "funding" -> "staff" [color="#a5b4fc33"];
}
