package forum_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utdiscussions/forumkit/modules/forum"
	"github.com/utdiscussions/forumkit/pkg/apiclient"
	"github.com/utdiscussions/forumkit/pkg/demo"
	"github.com/utdiscussions/forumkit/pkg/guard"
	"github.com/utdiscussions/forumkit/pkg/session"
	"github.com/utdiscussions/forumkit/pkg/sessionstore"
)

type shell struct {
	router   http.Handler
	sessions *session.Manager
}

// newShell assembles the local UI shell over the demo backend. When
// resolve is false the session is left Unresolved, as at process start.
func newShell(t *testing.T, resolve bool) *shell {
	t.Helper()

	backend := demo.NewBackend()
	client, err := apiclient.New("http://demo.invalid/api",
		apiclient.WithHTTPTransport(demo.NewTransport(backend, "/api")),
	)
	require.NoError(t, err)

	sessions := session.New(
		session.WithService(client.Auth()),
		session.WithStore(sessionstore.NewMemoryStore()),
	)
	client.Bind(sessions)

	if resolve {
		_, err = sessions.Resolve(context.Background())
		require.NoError(t, err)
	}

	router := forum.Router(forum.RouterDeps{
		Forum:    forum.NewService(client),
		Sessions: sessions,
		Guard:    guard.New(sessions),
	})

	return &shell{router: router, sessions: sessions}
}

func (s *shell) do(method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	return w
}

func TestRouter_PublicListing(t *testing.T) {
	s := newShell(t, true)

	w := s.do("GET", "/questions?category=Mathematics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list forum.QuestionList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Questions, 1)
	assert.Contains(t, list.Questions[0].Title, "Calculus")
}

func TestRouter_QuestionDetail(t *testing.T) {
	s := newShell(t, true)

	w := s.do("GET", "/questions/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var q forum.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, 1, q.ID)
	assert.NotEmpty(t, q.Replies)

	w = s.do("GET", "/questions/oops", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_GuardedSubmitFlow(t *testing.T) {
	s := newShell(t, true)

	// Unauthenticated submission view bounces to sign-in.
	w := s.do("GET", "/submit", "")
	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.Equal(t, "/login?return_to=%2Fsubmit", loc)

	// The sign-in view reports where the viewer was headed.
	w = s.do("GET", loc, "")
	require.Equal(t, http.StatusOK, w.Code)
	var form map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Equal(t, "/submit", form["returnTo"])

	// Sign in, carrying the return target.
	w = s.do("POST", loc, `{"email":"jdoe@example.edu","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		ReturnTo string `json:"returnTo"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "/submit", login.ReturnTo)

	// Navigation proceeds to the originally requested view.
	w = s.do("GET", "/submit", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// And posting a question now works.
	w = s.do("POST", "/questions", `{"title":"Parking near ECSS?","body":"Any tips?"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouter_LoginFailureInline(t *testing.T) {
	s := newShell(t, true)

	// The demo backend rejects empty credentials; the shell answers with
	// an inline message, never a redirect.
	w := s.do("POST", "/login", `{"email":"","password":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "login failed")
	assert.Equal(t, session.StateUnauthenticated, s.sessions.State())
}

func TestRouter_PendingWhileUnresolved(t *testing.T) {
	s := newShell(t, false)

	w := s.do("GET", "/submit", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Loading…", w.Body.String())
}

func TestRouter_Logout(t *testing.T) {
	s := newShell(t, true)

	w := s.do("POST", "/login", `{"email":"jdoe@example.edu","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, session.StateAuthenticated, s.sessions.State())

	w = s.do("POST", "/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, session.StateUnauthenticated, s.sessions.State())
}

func TestRouter_MeRequiresAuth(t *testing.T) {
	s := newShell(t, true)

	w := s.do("GET", "/me", "")
	assert.Equal(t, http.StatusFound, w.Code)

	w = s.do("POST", "/login", `{"email":"jdoe@example.edu","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do("GET", "/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Handle string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "jdoe", me.Handle)
}
