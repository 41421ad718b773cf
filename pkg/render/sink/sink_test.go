package sink

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/layout"
	"github.com/matzehuels/tocview/pkg/toc"
)

func testGraph(t *testing.T) *toc.Graph {
	t.Helper()
	g, err := toc.New(toc.Data{Columns: []toc.Column{
		{Title: "Problem", Nodes: []toc.Node{
			{ID: "p", Title: "Cages & crates", ConnectionIDs: []string{"a", "p"}},
		}},
		{Title: "Activities", Nodes: []toc.Node{
			{ID: "a", Title: "Advocacy", Text: "Corporate outreach.", ConnectionIDs: []string{"o"}},
			{ID: "x", Title: "Unrelated"},
		}},
		{Title: "Outcome", Nodes: []toc.Node{{ID: "o", Title: "Better welfare"}}},
	}})
	if err != nil {
		t.Fatalf("toc.New() error: %v", err)
	}
	return g
}

func TestRenderSVGWellFormed(t *testing.T) {
	g := testGraph(t)
	svg := RenderSVG(layout.Build(g, layout.Options{}), g, WithTitle("A <b> title"), WithHoverScript())

	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("invalid XML: %v\n%s", err, svg)
		}
	}
	s := string(svg)
	if !strings.Contains(s, "Cages &amp; crates") {
		t.Error("title text not escaped")
	}
	if !strings.Contains(s, "<script") {
		t.Error("hover script missing")
	}
}

func TestRenderSVGSkipsSelfLoops(t *testing.T) {
	g := testGraph(t)
	s := string(RenderSVG(layout.Build(g, layout.Options{}), g))
	if strings.Contains(s, `data-from="p" data-to="p"`) {
		t.Error("self loop drawn")
	}
	if got := strings.Count(s, `<path class="edge`); got != 2 {
		t.Errorf("drew %d connectors, want 2", got)
	}
}

func TestRenderSVGHeaderColors(t *testing.T) {
	g := testGraph(t)
	s := string(RenderSVG(layout.Build(g, layout.Options{}), g))
	for _, c := range []string{colorFirstColumn, colorMiddleColumn, colorLastColumn} {
		if !strings.Contains(s, `fill="`+c+`"`) {
			t.Errorf("missing header colour %s", c)
		}
	}
}

func TestHeaderColor(t *testing.T) {
	tests := []struct {
		i, n int
		want string
	}{
		{0, 3, colorFirstColumn},
		{1, 3, colorMiddleColumn},
		{2, 3, colorLastColumn},
		{0, 1, colorFirstColumn},
	}
	for _, tt := range tests {
		if got := HeaderColor(tt.i, tt.n); got != tt.want {
			t.Errorf("HeaderColor(%d, %d) = %s, want %s", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestRenderSVGSnapshotClasses(t *testing.T) {
	g := testGraph(t)
	snap := highlight.Resolve(g, highlight.NewState("a"))
	s := string(RenderSVG(layout.Build(g, layout.Options{}), g, WithSnapshot(snap)))

	for _, want := range []string{
		`<g class="node highlighted" data-id="a">`,
		`<g class="node faded" data-id="x">`,
		`<g class="node" data-id="o">`,
		`<path class="edge highlighted" data-from="a" data-to="o"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestRenderSVGLinks(t *testing.T) {
	g := testGraph(t)
	s := string(RenderSVG(layout.Build(g, layout.Options{}), g,
		WithLinks(func(id string) string { return "?seed=" + id + "&x=1" }),
		WithExpandLinks(func(id string) string { return "?expand=" + id }),
	))
	if !strings.Contains(s, `<a href="?seed=a&amp;x=1">`) {
		t.Error("node link missing or unescaped")
	}
	if !strings.Contains(s, `<a href="?expand=a">`) {
		t.Error("expand link missing for node with text")
	}
	if strings.Contains(s, `?expand=x`) {
		t.Error("expand link drawn for node without text")
	}
}

func TestRenderJSON(t *testing.T) {
	g := testGraph(t)
	l := layout.Build(g, layout.Options{Expanded: toc.NewSet("a")})
	data, err := RenderJSON(l, g, highlight.Resolve(g, highlight.NewState("o")))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Columns) != 3 || len(out.Nodes) != 4 || len(out.Edges) != 2 {
		t.Fatalf("columns=%d nodes=%d edges=%d", len(out.Columns), len(out.Nodes), len(out.Edges))
	}
	classes := map[string]string{}
	for _, n := range out.Nodes {
		classes[n.ID] = n.Class
		if n.ID == "a" && !n.Expanded {
			t.Error("a should be expanded")
		}
	}
	if classes["o"] != "node highlighted" || classes["x"] != "node faded" || classes["p"] != "node" {
		t.Errorf("classes = %v", classes)
	}
}
