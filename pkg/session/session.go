// Package session keeps the interaction state of diagram viewers on the
// server side.
//
// A viewer session binds one diagram name to a highlight state (pinned
// seeds, hovered node, expanded nodes) so that clients without scripting
// can pin and unpin nodes over several requests. Sessions live in process
// memory only and expire after a period of inactivity; a restart forgets
// them.
//
// # Usage
//
//	sess, err := session.New("programme", session.DefaultTTL)
//	sess.Toggle("advocacy")
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if sess == nil {
//	    // Not found or expired
//	}
//	snap := highlight.Resolve(g, sess.State())
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Session is the view state of one viewer of one diagram.
type Session struct {
	ID        string    `json:"id"`
	Diagram   string    `json:"diagram"`
	Seeds     []string  `json:"seeds"`
	Focus     string    `json:"focus,omitempty"`
	Expanded  []string  `json:"expanded,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session so it expires ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

// State returns the highlight state held by the session.
func (s *Session) State() highlight.State {
	st := highlight.NewState(s.Seeds...)
	st.Hover(s.Focus)
	return st
}

// SetState stores st, keeping seeds sorted so equal states serialise
// equally.
func (s *Session) SetState(st highlight.State) {
	s.Seeds = append([]string{}, st.Seeds.Sorted()...)
	s.Focus = st.Focus
}

// Toggle pins or unpins id and reports whether it is pinned afterwards.
func (s *Session) Toggle(id string) bool {
	st := s.State()
	pinned := st.Toggle(id)
	s.SetState(st)
	return pinned
}

// Hover sets the focused node.
func (s *Session) Hover(id string) { s.Focus = id }

// Leave clears the focused node.
func (s *Session) Leave() { s.Focus = "" }

// Clear unpins every seed.
func (s *Session) Clear() { s.Seeds = []string{} }

// ToggleExpanded shows or hides the detail text of id.
func (s *Session) ToggleExpanded(id string) {
	set := toc.NewSet(s.Expanded...)
	if set.Has(id) {
		set.Remove(id)
	} else {
		set.Add(id)
	}
	s.Expanded = set.Sorted()
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Seeds = slices.Clone(s.Seeds)
	c.Expanded = slices.Clone(s.Expanded)
	return &c
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session until its ExpiresAt.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 2 * time.Hour

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// New creates a session for diagram with nothing pinned.
func New(diagram string, ttl time.Duration) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:        id,
		Diagram:   diagram,
		Seeds:     []string{},
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// validID reports whether id could have come from GenerateID.
func validID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
