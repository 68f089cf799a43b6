package guard

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/utdiscussions/forumkit/pkg/session"
)

// ReturnToParam carries the originally requested path through the sign-in
// redirect so the flow can come back afterwards.
const ReturnToParam = "return_to"

// Action is what the guard decided for a request.
type Action string

const (
	// ActionPending means session resolution is still in progress; show
	// a neutral placeholder and nothing else.
	ActionPending Action = "pending"

	// ActionRedirect means the viewer must sign in first.
	ActionRedirect Action = "redirect"

	// ActionAllow means the guarded content may render unmodified.
	ActionAllow Action = "allow"
)

// Decision is a pure projection of session state onto one requested path.
type Decision struct {
	Action Action
	// Target is the sign-in location, including the return_to query,
	// set only for ActionRedirect.
	Target string
	// ReturnTo is the originally requested path the sign-in flow should
	// come back to, set only for ActionRedirect.
	ReturnTo string
}

// StateSource is the read-only view of the session the guard projects.
// Satisfied by *session.Manager.
type StateSource interface {
	State() session.State
}

// Guard gates views that require an authenticated identity. It owns no
// state of its own.
type Guard struct {
	sessions    StateSource
	signInPath  string
	placeholder string
	log         *slog.Logger
}

// New creates a guard over the given session state source.
func New(sessions StateSource, opts ...Option) *Guard {
	g := &Guard{
		sessions:    sessions,
		signInPath:  "/login",
		placeholder: "Loading…",
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check decides what may happen for the requested path.
func (g *Guard) Check(requested string) Decision {
	switch g.sessions.State() {
	case session.StateUnresolved:
		return Decision{Action: ActionPending}
	case session.StateAuthenticated:
		return Decision{Action: ActionAllow}
	default:
		returnTo := sanitizeReturnTo(requested)
		target := g.signInPath
		if returnTo != "" && returnTo != g.signInPath {
			target += "?" + ReturnToParam + "=" + url.QueryEscape(returnTo)
		}
		return Decision{Action: ActionRedirect, Target: target, ReturnTo: returnTo}
	}
}

// Protect is the middleware rendition of Check for locally mounted UIs:
// a 200 placeholder while resolving, a 302 to the sign-in view carrying
// the requested path while unauthenticated, pass-through otherwise.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := r.URL.Path
		if r.URL.RawQuery != "" {
			requested += "?" + r.URL.RawQuery
		}

		switch d := g.Check(requested); d.Action {
		case ActionPending:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(g.placeholder))
		case ActionRedirect:
			g.log.DebugContext(r.Context(), "redirecting unauthenticated request",
				slog.String("requested", requested),
				slog.String("target", d.Target),
			)
			http.Redirect(w, r, d.Target, http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// ReturnTarget recovers the post-login destination from a sign-in request,
// or fallback when none was carried or it is unsafe to follow.
func ReturnTarget(r *http.Request, fallback string) string {
	if target := sanitizeReturnTo(r.URL.Query().Get(ReturnToParam)); target != "" {
		return target
	}
	return fallback
}

// sanitizeReturnTo keeps only same-origin relative paths. Anything that
// could leave the application ("//evil", "http://…") is dropped.
func sanitizeReturnTo(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return ""
	}
	return target
}
