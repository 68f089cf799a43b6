package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utdiscussions/forumkit/pkg/guard"
	"github.com/utdiscussions/forumkit/pkg/identity"
	"github.com/utdiscussions/forumkit/pkg/session"
	"github.com/utdiscussions/forumkit/pkg/sessionstore"
)

type staticState struct{ state session.State }

func (s staticState) State() session.State { return s.state }

func TestGuard_Check(t *testing.T) {
	t.Parallel()

	t.Run("unresolved yields pending only", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateUnresolved})
		d := g.Check("/submit")
		assert.Equal(t, guard.ActionPending, d.Action)
		assert.Empty(t, d.Target)
		assert.Empty(t, d.ReturnTo)
	})

	t.Run("unauthenticated redirects with return target", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateUnauthenticated})
		d := g.Check("/submit")
		assert.Equal(t, guard.ActionRedirect, d.Action)
		assert.Equal(t, "/login?return_to=%2Fsubmit", d.Target)
		assert.Equal(t, "/submit", d.ReturnTo)
	})

	t.Run("authenticated allows", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateAuthenticated})
		assert.Equal(t, guard.ActionAllow, g.Check("/submit").Action)
	})

	t.Run("custom sign-in path", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateUnauthenticated}, guard.WithSignInPath("/signin"))
		assert.Equal(t, "/signin?return_to=%2Fsubmit", g.Check("/submit").Target)
	})

	t.Run("unsafe return target dropped", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateUnauthenticated})
		d := g.Check("//evil.example.com/phish")
		assert.Equal(t, guard.ActionRedirect, d.Action)
		assert.Equal(t, "/login", d.Target)
		assert.Empty(t, d.ReturnTo)
	})
}

func TestGuard_Protect(t *testing.T) {
	t.Parallel()

	guarded := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("guarded content"))
	})

	t.Run("pending placeholder while unresolved", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateUnresolved})
		w := httptest.NewRecorder()
		g.Protect(guarded).ServeHTTP(w, httptest.NewRequest("GET", "/submit", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Loading…", w.Body.String())
		assert.NotContains(t, w.Body.String(), "guarded content")
	})

	t.Run("redirect carries requested location", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateUnauthenticated})
		w := httptest.NewRecorder()
		g.Protect(guarded).ServeHTTP(w, httptest.NewRequest("GET", "/submit?tag=go", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?return_to=%2Fsubmit%3Ftag%3Dgo", w.Header().Get("Location"))
		assert.NotContains(t, w.Body.String(), "guarded content")
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		t.Parallel()

		g := guard.New(staticState{session.StateAuthenticated})
		w := httptest.NewRecorder()
		g.Protect(guarded).ServeHTTP(w, httptest.NewRequest("GET", "/submit", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "guarded content", w.Body.String())
	})
}

func TestReturnTarget(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/login?return_to=%2Fsubmit", nil)
	assert.Equal(t, "/submit", guard.ReturnTarget(r, "/"))

	r = httptest.NewRequest("GET", "/login", nil)
	assert.Equal(t, "/", guard.ReturnTarget(r, "/"))

	r = httptest.NewRequest("GET", "/login?return_to=http%3A%2F%2Fevil.example", nil)
	assert.Equal(t, "/", guard.ReturnTarget(r, "/"))
}

// stubAuth is a minimal session.Service for the full-flow test.
type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, email, password string) (*identity.Identity, error) {
	return &identity.Identity{
		ID:       "u-1",
		Handle:   "jdoe",
		Email:    email,
		JoinedAt: time.Now().UTC(),
	}, nil
}

func (stubAuth) Register(ctx context.Context, in session.RegisterInput) (*identity.Identity, error) {
	return nil, nil
}

func (stubAuth) Logout(ctx context.Context) error { return nil }

func (stubAuth) UpdateProfile(ctx context.Context, u identity.Update) (*identity.Identity, error) {
	return nil, nil
}

// TestGuard_SignInRoundTrip walks the full redirect loop on a chi router:
// guarded path redirects to sign-in with the return target, login flips
// the session, and the originally requested path then renders.
func TestGuard_SignInRoundTrip(t *testing.T) {
	ctx := context.Background()

	sessions := session.New(
		session.WithService(stubAuth{}),
		session.WithStore(sessionstore.NewMemoryStore()),
	)
	_, err := sessions.Resolve(ctx)
	require.NoError(t, err)

	g := guard.New(sessions)

	r := chi.NewRouter()
	r.With(g.Protect).Get("/submit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("submit form"))
	})
	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("sign in, then back to " + guard.ReturnTarget(r, "/")))
	})

	// Unauthenticated request bounces to sign-in.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/submit", nil))
	require.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.Equal(t, "/login?return_to=%2Fsubmit", loc)

	// The sign-in view knows where to go afterwards.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", loc, nil))
	assert.Equal(t, "sign in, then back to /submit", w.Body.String())

	// After login the guarded view renders.
	_, err = sessions.Login(ctx, "jdoe@example.edu", "secret1")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/submit", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "submit form", w.Body.String())
}
