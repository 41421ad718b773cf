package pipeline

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/matzehuels/tocview/pkg/cache"
	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/toc"
)

func testGraph(t *testing.T) *toc.Graph {
	t.Helper()
	g, err := toc.New(toc.Data{Columns: []toc.Column{
		{Title: "Inputs", Nodes: []toc.Node{{ID: "a", Title: "A", ConnectionIDs: []string{"b"}}}},
		{Title: "Outcomes", Nodes: []toc.Node{{ID: "b", Title: "B", Text: "more"}, {ID: "c", Title: "C"}}},
	}})
	if err != nil {
		t.Fatalf("toc.New() error: %v", err)
	}
	return g
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"json", false},
		{"png", false},
		{"pdf", false},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !tocerr.Is(err, tocerr.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, tocerr.GetCode(err))
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if o.View != ViewColumns || len(o.Formats) != 1 || o.Formats[0] != FormatSVG || o.Scale != DefaultScale {
		t.Errorf("defaults = %+v", o)
	}

	bad := Options{View: "tower"}
	if err := bad.ValidateAndSetDefaults(); !tocerr.Is(err, tocerr.ErrCodeInvalidInput) {
		t.Errorf("invalid view error = %v", err)
	}
}

func TestExecuteColumns(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(ctx, testGraph(t), Options{
		Seeds:   []string{"a"},
		Formats: []string{FormatSVG, FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !res.Snapshot.Connected.Equal(toc.NewSet("a", "b")) {
		t.Errorf("Connected = %v", res.Snapshot.Connected.Sorted())
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), `class="node faded" data-id="c"`) {
		t.Error("svg missing faded node c")
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "digraph G") {
		t.Error("dot artifact missing")
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"class": "node highlighted"`) {
		t.Error("json artifact missing highlight class")
	}
	if res.DiagramHash == "" || res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 1 {
		t.Errorf("result metadata = %q %+v", res.DiagramHash, res.Stats)
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	g := testGraph(t)
	opts := Options{Seeds: []string{"b"}, Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss")
	}
	second, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs")
	}

	opts.Refresh = true
	third, _ := r.Execute(ctx, g, opts)
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteLinks(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), testGraph(t), Options{
		Seeds:    []string{"a"},
		LinkBase: "/diagrams/demo/svg",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	svg := string(res.Artifacts[FormatSVG])
	if !strings.Contains(svg, `href="/diagrams/demo/svg?seed=a&amp;seed=b"`) {
		t.Errorf("missing toggle link for b:\n%s", svg)
	}
	if !strings.Contains(svg, `href="/diagrams/demo/svg"`) {
		t.Error("toggling the only seed should link to the bare base")
	}
}

func TestToggleURL(t *testing.T) {
	tests := []struct {
		seeds []string
		id    string
		want  url.Values
	}{
		{nil, "a", url.Values{"seed": {"a"}}},
		{[]string{"a"}, "a", url.Values{}},
		{[]string{"c", "a"}, "b", url.Values{"seed": {"a", "b", "c"}}},
	}
	for _, tt := range tests {
		got := ToggleURL("/x", tt.seeds, []string{"e"}, tt.id)
		u, err := url.Parse(got)
		if err != nil {
			t.Fatalf("bad url %q", got)
		}
		q := u.Query()
		if strings.Join(q["seed"], ",") != strings.Join(tt.want["seed"], ",") {
			t.Errorf("ToggleURL(%v, %s) seeds = %v, want %v", tt.seeds, tt.id, q["seed"], tt.want["seed"])
		}
		if q.Get("expand") != "e" {
			t.Errorf("ToggleURL dropped expanded nodes: %s", got)
		}
	}
}

func TestExpandURL(t *testing.T) {
	got := ExpandURL("/x", []string{"a"}, []string{"b"}, "b")
	if got != "/x?seed=a" {
		t.Errorf("collapse = %q", got)
	}
	got = ExpandURL("/x", nil, nil, "b")
	if got != "/x?expand=b" {
		t.Errorf("expand = %q", got)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Scale: 3}
	if o.ArtifactKeyOpts(FormatSVG).Scale != 0 {
		t.Error("scale should only key PNG artifacts")
	}
	if o.ArtifactKeyOpts(FormatPNG).Scale != 3 {
		t.Error("PNG key should carry the scale")
	}
}
