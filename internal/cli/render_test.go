package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,json,png", []string{"svg", "json", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSplitIDs(t *testing.T) {
	got := splitIDs([]string{"a,b", " c ", "", "d,,"})
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("splitIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "diagrams/toc.yaml", "diagrams/toc"},
		{"out/view.svg", "toc.json", "out/view"},
		{"out/view.png", "toc.json", "out/view"},
		{"out/view", "toc.json", "out/view"},
		{"out/view.txt", "toc.json", "out/view.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestDiagramName(t *testing.T) {
	if got := diagramName("/x/y/programme.v2.yaml"); got != "programme.v2" {
		t.Errorf("diagramName = %q", got)
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir, "toc.yaml")

	c := New(io.Discard, LogInfo)
	ctx := withLogger(context.Background(), c.Logger)
	err := c.runRender(ctx, input, renderOpts{
		output:  filepath.Join(dir, "out", "view"),
		formats: []string{"svg", "dot", "json"},
		seeds:   []string{"policy"},
		view:    "columns",
		noCache: true,
	})
	if err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "out", "view.svg"))
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(svg), `class="node highlighted" data-id="policy"`) {
		t.Error("policy should be highlighted in the SVG")
	}
	if !strings.Contains(string(svg), `class="node faded" data-id="lonely"`) {
		t.Error("lonely should be faded in the SVG")
	}
	for _, ext := range []string{"dot", "json"} {
		if _, err := os.Stat(filepath.Join(dir, "out", "view."+ext)); err != nil {
			t.Errorf("%s not written: %v", ext, err)
		}
	}
}

func TestRunRenderMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	err := c.runRender(context.Background(), filepath.Join(t.TempDir(), "nope.json"), renderOpts{
		formats: []string{"svg"},
		noCache: true,
	})
	if err == nil {
		t.Error("expected an error for a missing input")
	}
}
