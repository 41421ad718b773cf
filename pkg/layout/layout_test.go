package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tocview/pkg/toc"
)

func testGraph(t *testing.T) *toc.Graph {
	t.Helper()
	g, err := toc.New(toc.Data{Columns: []toc.Column{
		{Title: "Inputs", Nodes: []toc.Node{
			{ID: "a", Title: "Alpha", ConnectionIDs: []string{"c", "b"}},
			{ID: "b", Title: "Beta"},
		}},
		{Title: "Outcomes", Nodes: []toc.Node{
			{ID: "c", Title: "Gamma", Text: "A longer explanation of gamma.", ConnectionIDs: []string{"a"}},
		}},
	}})
	if err != nil {
		t.Fatalf("toc.New() error: %v", err)
	}
	return g
}

func TestBoxGeometry(t *testing.T) {
	b := Box{Left: 10, Right: 50, Top: 20, Bottom: 80}
	if b.Width() != 40 || b.Height() != 60 {
		t.Errorf("Width/Height = %v/%v, want 40/60", b.Width(), b.Height())
	}
	if b.CenterX() != 30 || b.CenterY() != 50 {
		t.Errorf("Center = (%v, %v), want (30, 50)", b.CenterX(), b.CenterY())
	}
}

func TestBuildColumns(t *testing.T) {
	l := Build(testGraph(t), Options{})
	opts := DefaultOptions()

	if len(l.Headers) != 2 || l.Headers[1].Title != "Outcomes" {
		t.Fatalf("Headers = %+v", l.Headers)
	}
	a, c := l.Boxes["a"], l.Boxes["c"]
	if a.Left != opts.Margin || a.Width() != opts.ColumnWidth {
		t.Errorf("box a = %+v", a)
	}
	if got := c.Left - a.Right; got != opts.ColumnGap {
		t.Errorf("column gap = %v, want %v", got, opts.ColumnGap)
	}
	wantW := 2*opts.Margin + 2*opts.ColumnWidth + opts.ColumnGap
	if l.FrameWidth != wantW {
		t.Errorf("FrameWidth = %v, want %v", l.FrameWidth, wantW)
	}
}

func TestBuildStacksEvenly(t *testing.T) {
	l := Build(testGraph(t), Options{})
	a, b := l.Boxes["a"], l.Boxes["b"]
	if a.Bottom >= b.Top {
		t.Errorf("a (%v..%v) overlaps b (%v..%v)", a.Top, a.Bottom, b.Top, b.Bottom)
	}
	top := l.Options.Margin + l.Options.HeaderHeight
	bottom := l.FrameHeight - l.Options.Margin
	gap1, gap2, gap3 := a.Top-top, b.Top-a.Bottom, bottom-b.Bottom
	if math.Abs(gap1-gap2) > 1e-9 || math.Abs(gap2-gap3) > 1e-9 {
		t.Errorf("uneven gaps %v %v %v", gap1, gap2, gap3)
	}
}

func TestBuildExpanded(t *testing.T) {
	g := testGraph(t)
	collapsed := Build(g, Options{})
	expanded := Build(g, Options{Expanded: toc.NewSet("c", "a")})

	if len(collapsed.Boxes["c"].Detail) != 0 {
		t.Error("collapsed box carries detail lines")
	}
	if len(expanded.Boxes["c"].Detail) == 0 {
		t.Error("expanded box has no detail lines")
	}
	if expanded.Boxes["c"].Height() <= collapsed.Boxes["c"].Height() {
		t.Error("expanding should grow the box")
	}
	// a has no text, so expanding it changes nothing.
	if expanded.Boxes["a"].Height() != collapsed.Boxes["a"].Height() {
		t.Error("expanding a node without text changed its height")
	}
}

func TestBuildNil(t *testing.T) {
	l := Build(nil, Options{})
	if len(l.Boxes) != 0 || l.FrameWidth != 0 {
		t.Errorf("Build(nil) = %+v", l)
	}
}

func TestConnectorForward(t *testing.T) {
	l := Build(testGraph(t), Options{})
	a, c := l.Boxes["a"], l.Boxes["c"]

	got, ok := l.Connector("a", "c")
	if !ok {
		t.Fatal("Connector(a, c) not found")
	}
	off := (c.Left - a.Right) / 2
	want := Curve{
		Start: Point{a.Right, a.CenterY()},
		C1:    Point{a.Right + off, a.CenterY()},
		C2:    Point{c.Left - off, c.CenterY()},
		End:   Point{c.Left, c.CenterY()},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Connector(a, c) mismatch (-want +got):\n%s", diff)
	}
}

func TestConnectorBackward(t *testing.T) {
	l := Build(testGraph(t), Options{})
	a, c := l.Boxes["a"], l.Boxes["c"]

	got, _ := l.Connector("c", "a")
	off := (c.Left - a.Right) / 2
	want := Curve{
		Start: Point{c.Left, c.CenterY()},
		C1:    Point{c.Left - off, c.CenterY()},
		C2:    Point{a.Right + off, a.CenterY()},
		End:   Point{a.Right, a.CenterY()},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Connector(c, a) mismatch (-want +got):\n%s", diff)
	}
}

func TestConnectorSameColumn(t *testing.T) {
	l := Build(testGraph(t), Options{})
	got, _ := l.Connector("a", "b")
	if got.Start.X != l.Boxes["a"].Left || got.End.X != l.Boxes["b"].Right {
		t.Errorf("same-column connector = %+v", got)
	}
}

func TestConnectorUnknown(t *testing.T) {
	l := Build(testGraph(t), Options{})
	if _, ok := l.Connector("a", "nope"); ok {
		t.Error("Connector to unknown node should fail")
	}
}

func TestCurvePath(t *testing.T) {
	c := Curve{Point{0, 1}, Point{2, 3}, Point{4, 5}, Point{6, 7}}
	want := "M 0.0 1.0 C 2.0 3.0, 4.0 5.0, 6.0 7.0"
	if got := c.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"  spaced   out  ", 20, []string{"spaced out"}},
		{"🍎 🍐 🍊", 3, []string{"🍎 🍐", "🍊"}},
	}
	for _, tt := range tests {
		got := Wrap(tt.in, tt.width)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Wrap(%q, %d) mismatch (-want +got):\n%s", tt.in, tt.width, diff)
		}
	}
	for _, line := range Wrap(strings.Repeat("word ", 50), 12) {
		if len(line) > 12 {
			t.Errorf("line %q longer than 12", line)
		}
	}
}
