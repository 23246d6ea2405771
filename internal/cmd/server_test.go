package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gravitrone/nebula-tags/cli/internal/api"
	"github.com/gravitrone/nebula-tags/cli/internal/config"
)

// fakeNebula is an in-memory stand-in for the tag endpoints.
type fakeNebula struct {
	mu         sync.Mutex
	user       api.User
	tags       []api.UserTag
	created    []string
	failUpdate bool
	delay      time.Duration
	lastAuth   string
}

func (f *fakeNebula) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	delay := f.delay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuth = r.Header.Get("Authorization")

	switch {
	case r.URL.Path == "/api/keys/login" && r.Method == http.MethodPost:
		var in api.LoginInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeData(w, api.LoginResponse{APIKey: "nbl_test", UserID: f.user.ID, Username: in.Username})

	case r.URL.Path == "/api/me" && r.Method == http.MethodGet:
		writeData(w, f.user)

	case r.URL.Path == "/api/me" && r.Method == http.MethodPatch:
		var in api.UpdateUserInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Name != nil {
			f.user.Name = *in.Name
		}
		if in.Description != nil {
			f.user.Description = *in.Description
		}
		writeData(w, f.user)

	case r.URL.Path == "/api/tags" && r.Method == http.MethodPost:
		var in api.CreateTagInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.created = append(f.created, in.ID)
		writeData(w, api.Tag{ID: in.ID})

	case r.URL.Path == "/api/me/tags" && r.Method == http.MethodGet:
		writeData(w, f.tags)

	case r.URL.Path == "/api/me/tags" && r.Method == http.MethodPost:
		var in api.AddUserTagInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		ut := api.UserTag{ID: f.user.ID + "--" + in.TagID, UserID: f.user.ID, TagID: in.TagID}
		f.tags = append(f.tags, ut)
		writeData(w, ut)

	case strings.HasPrefix(r.URL.Path, "/api/users/"+f.user.ID+"/tags/"):
		tagID := strings.TrimPrefix(r.URL.Path, "/api/users/"+f.user.ID+"/tags/")
		i := f.index(tagID)
		if i < 0 {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "tag not found")
			return
		}
		switch r.Method {
		case http.MethodPatch:
			if f.failUpdate {
				writeError(w, http.StatusInternalServerError, "INTERNAL", "db down")
				return
			}
			var in api.UpdateUserTagInput
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.Story != nil {
				f.tags[i].Story = *in.Story
			}
			if in.Relevance != nil {
				f.tags[i].Relevance = *in.Relevance
			}
			writeData(w, f.tags[i])
		case http.MethodDelete:
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeNebula) index(tagID string) int {
	for i, ut := range f.tags {
		if ut.TagID == tagID {
			return i
		}
	}
	return -1
}

func (f *fakeNebula) tag(tagID string) (api.UserTag, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.index(tagID); i >= 0 {
		return f.tags[i], true
	}
	return api.UserTag{}, false
}

func (f *fakeNebula) profile() api.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeNebula) createdTags() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.created...)
}

func (f *fakeNebula) slowDown(d time.Duration) {
	f.mu.Lock()
	f.delay = d
	f.mu.Unlock()
}

func (f *fakeNebula) authorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeNebula) failUpdates() {
	f.mu.Lock()
	f.failUpdate = true
	f.mu.Unlock()
}

func writeData(w http.ResponseWriter, data any) {
	b, _ := json.Marshal(map[string]any{"data": data})
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.WriteHeader(status)
	b, _ := json.Marshal(map[string]any{"error": map[string]any{"code": code, "message": msg}})
	_, _ = w.Write(b)
}

// loggedIn starts a fake server and writes a config pointing at it.
func loggedIn(t *testing.T, tags ...api.UserTag) *fakeNebula {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	fake := &fakeNebula{user: api.User{ID: "u1", Username: "alice", Name: "Alice"}, tags: tags}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := &config.Config{APIKey: "nbl_test", UserID: "u1", Username: "alice", BaseURL: srv.URL}
	require.NoError(t, cfg.Save())
	return fake
}
