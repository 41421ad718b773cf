package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/pipeline"
	"github.com/matzehuels/tocview/pkg/session"
)

// nodeRequest is the body of the session actions that target one node.
type nodeRequest struct {
	ID string `json:"id"`
}

type sessionResponse struct {
	Session  *session.Session `json:"session"`
	Snapshot resolveResponse  `json:"snapshot"`
}

// sessionAction mutates a session in place. It returns an error only for
// malformed requests.
type sessionAction func(sess *session.Session, node string) error

func needsNode(fn func(sess *session.Session, id string)) sessionAction {
	return func(sess *session.Session, node string) error {
		if node == "" {
			return tocerr.New(tocerr.ErrCodeInvalidInput, "node id is required")
		}
		fn(sess, node)
		return nil
	}
}

var sessionActions = map[string]sessionAction{
	"toggle": needsNode(func(s *session.Session, id string) { s.Toggle(id) }),
	"hover":  needsNode((*session.Session).Hover),
	"expand": needsNode((*session.Session).ToggleExpanded),
	"leave":  func(s *session.Session, _ string) error { s.Leave(); return nil },
	"clear":  func(s *session.Session, _ string) error { s.Clear(); return nil },
}

func (s *Server) sessionRouter(r chi.Router) {
	r.Get("/", s.handleSessionGet)
	r.Delete("/", s.handleSessionDelete)
	r.Get("/svg", s.handleSessionSVG)
	r.Post("/{action}", s.handleSessionAction)
}

// handleSessionCreate starts a viewer session for a stored diagram. The body
// may carry initial seeds: {"seeds": ["a"]}.
func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, _, ok := s.loadGraph(w, r)
	if !ok {
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, r, tocerr.Wrap(tocerr.ErrCodeInvalidInput, err, "decode session request"))
		return
	}

	sess, err := session.New(name, session.DefaultTTL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st := highlight.NewState(req.Seeds...)
	st.Hover(req.Focus)
	sess.SetState(st)

	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "diagram", name)
	writeJSON(w, http.StatusCreated, sessionResponse{
		Session:  sess,
		Snapshot: snapshotResponse(g, s.runner.Resolve(r.Context(), g, pipeline.Options{Name: name, Seeds: sess.Seeds, Focus: sess.Focus})),
	})
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.writeSession(w, r, sess)
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionAction(w http.ResponseWriter, r *http.Request) {
	action, ok := sessionActions[chi.URLParam(r, "action")]
	if !ok {
		s.writeError(w, r, tocerr.New(tocerr.ErrCodeNotFound, "unknown session action %q", chi.URLParam(r, "action")))
		return
	}

	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req nodeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, r, tocerr.Wrap(tocerr.ErrCodeInvalidInput, err, "decode session action"))
		return
	}
	if err := action(sess, req.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess.Touch(session.DefaultTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSession(w, r, sess)
}

func (s *Server) handleSessionSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	d, err := s.store.Get(r.Context(), sess.Diagram)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := buildGraph(d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), g, pipeline.Options{
		Name:     sess.Diagram,
		Seeds:    sess.Seeds,
		Focus:    sess.Focus,
		Expanded: sess.Expanded,
		Formats:  []string{pipeline.FormatSVG},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[pipeline.FormatSVG])
}

// loadSession fetches the session named in the route, writing a 404 when it
// is missing or expired.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	if sess == nil {
		s.writeError(w, r, tocerr.New(tocerr.ErrCodeNotFound, "session not found: %s", id))
		return nil, false
	}
	return sess, true
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	d, err := s.store.Get(r.Context(), sess.Diagram)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := buildGraph(d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap := s.runner.Resolve(r.Context(), g, pipeline.Options{Name: sess.Diagram, Seeds: sess.Seeds, Focus: sess.Focus})
	writeJSON(w, http.StatusOK, sessionResponse{Session: sess, Snapshot: snapshotResponse(g, snap)})
}
