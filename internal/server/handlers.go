package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/highlight"
	tocio "github.com/matzehuels/tocview/pkg/io"
	"github.com/matzehuels/tocview/pkg/pipeline"
	"github.com/matzehuels/tocview/pkg/toc"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
}

// resolveRequest is the body of POST /api/diagrams/{name}/resolve.
type resolveRequest struct {
	Seeds []string `json:"seeds"`
	Focus string   `json:"focus"`
}

type edgeClass struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Class string `json:"class"`
}

type resolveResponse struct {
	Seeds     []string          `json:"seeds"`
	Focus     string            `json:"focus,omitempty"`
	Connected []string          `json:"connected"`
	Neighbors []string          `json:"neighbors"`
	Nodes     map[string]string `json:"nodes"`
	Edges     []edgeClass       `json:"edges"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"diagrams": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := tocio.Write(w, d, tocio.FormatJSON); err != nil {
		s.logger.Warn("write diagram", "error", err)
	}
}

// handlePut stores the request body as a diagram. The body format follows
// the Content-Type: application/yaml, application/toml or JSON otherwise.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := tocerr.ValidateDiagramName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := tocio.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), bodyFormat(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := tocio.Build(d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, d); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("stored diagram", "name", name, "nodes", g.NodeCount(), "dangling", len(g.Dangling()))
	writeJSON(w, http.StatusOK, map[string]any{
		"name":     name,
		"nodes":    g.NodeCount(),
		"edges":    g.EdgeCount(),
		"dangling": len(g.Dangling()),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	g, opts, ok := s.loadGraph(w, r)
	if !ok {
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, r, tocerr.Wrap(tocerr.ErrCodeInvalidInput, err, "decode resolve request"))
		return
	}
	opts.Seeds = req.Seeds
	opts.Focus = req.Focus

	snap := s.runner.Resolve(r.Context(), g, opts)
	writeJSON(w, http.StatusOK, snapshotResponse(g, snap))
}

func snapshotResponse(g *toc.Graph, snap highlight.Snapshot) resolveResponse {
	resp := resolveResponse{
		Seeds:     orEmpty(snap.Seeds.Sorted()),
		Focus:     snap.Focus,
		Connected: orEmpty(snap.Connected.Sorted()),
		Neighbors: orEmpty(snap.Neighbors.Sorted()),
		Nodes:     make(map[string]string, g.NodeCount()),
		Edges:     []edgeClass{},
	}
	for _, id := range g.NodeIDs() {
		resp.Nodes[id] = snap.NodeStyle(id).Class()
	}
	for _, e := range g.Edges() {
		if e.SelfLoop() {
			continue
		}
		resp.Edges = append(resp.Edges, edgeClass{From: e.From, To: e.To, Class: snap.EdgeStyle(e.From, e.To).Class()})
	}
	return resp
}

// orEmpty keeps empty lists as [] rather than null in responses.
func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	g, opts, ok := s.loadGraph(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts.Seeds = q["seed"]
	opts.Focus = q.Get("focus")
	opts.Expanded = q["expand"]
	opts.View = q.Get("view")
	opts.Detailed = q.Get("detailed") == "true"
	opts.Title = q.Get("title")
	opts.Formats = []string{format}
	if format == pipeline.FormatSVG && opts.View != pipeline.ViewNodelink {
		opts.LinkBase = r.URL.Path
	}

	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Diagram-Hash", res.DiagramHash)
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// loadGraph fetches and builds the diagram named in the route. It writes the
// error response itself and reports ok=false on failure.
func (s *Server) loadGraph(w http.ResponseWriter, r *http.Request) (*toc.Graph, pipeline.Options, bool) {
	name := chi.URLParam(r, "name")
	d, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return nil, pipeline.Options{}, false
	}
	g, err := buildGraph(d)
	if err != nil {
		s.writeError(w, r, err)
		return nil, pipeline.Options{}, false
	}
	return g, pipeline.Options{Name: name}, true
}

func buildGraph(d toc.Data) (*toc.Graph, error) {
	return tocio.Build(d)
}

func bodyFormat(r *http.Request) tocio.Format {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return tocio.FormatYAML
	case "application/toml", "text/toml":
		return tocio.FormatTOML
	default:
		return tocio.FormatJSON
	}
}
