// Package pipeline runs the resolve → layout → render pipeline for a
// diagram.
//
// The CLI and the HTTP server both go through a [Runner], so a diagram
// rendered from the command line and one served over HTTP come out
// byte-identical for the same options.
//
// # Stages
//
//  1. Resolve: derive the highlight snapshot from the pinned seeds and
//     the hovered node
//  2. Layout: compute column and node geometry
//  3. Render: produce each requested format (SVG, DOT, JSON, PDF, PNG)
//
// Rendered artifacts are cached under a key derived from the diagram's
// content hash and the options that affect the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Seeds:   []string{"advocacy"},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"time"

	"github.com/matzehuels/tocview/pkg/cache"
	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/layout"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// Views.
const (
	ViewColumns  = "columns"
	ViewNodelink = "nodelink"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewColumns:  true,
	ViewNodelink: true,
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Name identifies the diagram in logs and metrics.
	Name string `json:"name,omitempty"`

	// Highlight state
	Seeds []string `json:"seeds,omitempty"`
	Focus string   `json:"focus,omitempty"`

	// Layout options
	View     string   `json:"view,omitempty"`
	Expanded []string `json:"expanded,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Node-link labels include detail text

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	LinkBase string   `json:"link_base,omitempty"` // Makes nodes clickable; see ToggleURL
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"` // Skip cache lookups
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DiagramHash is the content hash of the diagram.
	DiagramHash string

	// Snapshot is the resolved highlight state.
	Snapshot highlight.Snapshot

	// Layout is the column view geometry. It also backs the JSON format.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ColumnCount   int
	NodeCount     int
	EdgeCount     int
	DanglingCount int // Connections naming no node
	ResolveTime   time.Duration
	RenderTime    time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return tocerr.New(tocerr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, dot, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return tocerr.New(tocerr.ErrCodeInvalidInput, "invalid view: %q (must be one of: columns, nodelink)", view)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.View == "" {
		o.View = ViewColumns
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := ValidateView(o.View); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsNodelink reports whether the node-link view is selected.
func (o *Options) IsNodelink() bool {
	return o.View == ViewNodelink
}

// State returns the highlight state described by the options.
func (o *Options) State() highlight.State {
	st := highlight.NewState(o.Seeds...)
	st.Hover(o.Focus)
	return st
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		View:     o.View,
		Seeds:    o.Seeds,
		Focus:    o.Focus,
		Expanded: o.Expanded,
		Detailed: o.Detailed,
		Links:    o.LinkBase,
		Title:    o.Title,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
