package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var cmpEmpty = cmpopts.EquateEmpty()

func createSession(t *testing.T, srv http.Handler, body string) sessionResponse {
	t.Helper()
	rec := do(srv, http.MethodPost, "/api/diagrams/demo/sessions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var got sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Session == nil || got.Session.ID == "" {
		t.Fatalf("created session has no id: %+v", got)
	}
	return got
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	created := createSession(t, srv, `{"seeds":["staff"]}`)
	if diff := cmp.Diff([]string{"funding", "reach", "staff"}, created.Snapshot.Connected); diff != "" {
		t.Errorf("initial connected mismatch (-want +got):\n%s", diff)
	}
	base := "/api/sessions/" + created.Session.ID

	steps := []struct {
		action    string
		body      string
		seeds     []string
		focus     string
		connected []string
	}{
		{"toggle", `{"id":"time"}`, []string{"staff", "time"}, "", []string{"events", "funding", "reach", "staff", "time"}},
		{"hover", `{"id":"events"}`, []string{"staff", "time"}, "events", []string{"events", "funding", "reach", "staff", "time"}},
		{"toggle", `{"id":"staff"}`, []string{"time"}, "events", []string{"events", "time"}},
		{"leave", "", []string{"time"}, "", []string{"events", "time"}},
		{"clear", "", []string{}, "", []string{}},
	}
	for _, step := range steps {
		rec := do(srv, http.MethodPost, base+"/"+step.action, step.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d: %s", step.action, rec.Code, rec.Body)
		}
		var got sessionResponse
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(step.seeds, got.Snapshot.Seeds, cmpEmpty); diff != "" {
			t.Errorf("%s seeds mismatch (-want +got):\n%s", step.action, diff)
		}
		if got.Snapshot.Focus != step.focus {
			t.Errorf("%s focus = %q, want %q", step.action, got.Snapshot.Focus, step.focus)
		}
		if diff := cmp.Diff(step.connected, got.Snapshot.Connected, cmpEmpty); diff != "" {
			t.Errorf("%s connected mismatch (-want +got):\n%s", step.action, diff)
		}
	}

	rec := do(srv, http.MethodGet, base, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	if rec := do(srv, http.MethodDelete, base, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := do(srv, http.MethodGet, base, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestSessionExpand(t *testing.T) {
	srv := newTestServer(t, nil)
	base := "/api/sessions/" + createSession(t, srv, "").Session.ID

	rec := do(srv, http.MethodPost, base+"/expand", `{"id":"staff"}`)
	var got sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"staff"}, got.Session.Expanded); diff != "" {
		t.Errorf("expanded mismatch (-want +got):\n%s", diff)
	}

	do(srv, http.MethodPost, base+"/expand", `{"id":"staff"}`)
	rec = do(srv, http.MethodGet, base, "")
	got = sessionResponse{}
	json.NewDecoder(rec.Body).Decode(&got)
	if len(got.Session.Expanded) != 0 {
		t.Errorf("second expand left %v", got.Session.Expanded)
	}
}

func TestSessionSVG(t *testing.T) {
	srv := newTestServer(t, nil)
	base := "/api/sessions/" + createSession(t, srv, `{"seeds":["time"]}`).Session.ID

	rec := do(srv, http.MethodGet, base+"/svg", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{`class="node highlighted" data-id="time"`, `class="node faded" data-id="staff"`} {
		if !strings.Contains(body, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestSessionErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	base := "/api/sessions/" + createSession(t, srv, "").Session.ID

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"UnknownDiagram", http.MethodPost, "/api/diagrams/missing/sessions", "", http.StatusNotFound, "DIAGRAM_NOT_FOUND"},
		{"UnknownSession", http.MethodGet, "/api/sessions/nope", "", http.StatusNotFound, "NOT_FOUND"},
		{"UnknownAction", http.MethodPost, base + "/jump", "", http.StatusNotFound, "NOT_FOUND"},
		{"ToggleWithoutID", http.MethodPost, base + "/toggle", "{}", http.StatusBadRequest, "INVALID_INPUT"},
		{"BadBody", http.MethodPost, base + "/hover", "{", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(srv, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			var got errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if got.Code != tt.code {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}
