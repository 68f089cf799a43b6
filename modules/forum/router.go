package forum

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utdiscussions/forumkit/pkg/apiclient"
	"github.com/utdiscussions/forumkit/pkg/guard"
	"github.com/utdiscussions/forumkit/pkg/session"
)

// RouterDeps wires the local UI shell. Everything is required.
type RouterDeps struct {
	Forum    *Service
	Sessions *session.Manager
	Guard    *guard.Guard
	Log      *slog.Logger
}

// Router builds the chi router for the local forum shell: public listing
// and detail views, a guarded submission view, and the sign-in endpoints
// the guard redirects to.
//
//	r := chi.NewRouter()
//	r.Mount("/", forum.Router(forum.RouterDeps{…}))
func Router(deps RouterDeps) chi.Router {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	h := &handlers{deps: deps}

	r := chi.NewRouter()

	r.Get("/questions", h.listQuestions)
	r.Get("/questions/{id}", h.getQuestion)

	// The submission view requires an identity; the guard bounces
	// everyone else to /login with the return target.
	r.With(deps.Guard.Protect).Post("/questions", h.createQuestion)
	r.With(deps.Guard.Protect).Get("/submit", h.submitForm)
	r.With(deps.Guard.Protect).Get("/me", h.me)

	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	return r
}

type handlers struct {
	deps RouterDeps
}

func (h *handlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	list, err := h.deps.Forum.ListQuestions(r.Context(), ListParams{
		Page:     page,
		Limit:    limit,
		Category: q.Get("category"),
		Search:   q.Get("search"),
		SortBy:   q.Get("sortBy"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, list)
}

func (h *handlers) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.json(w, http.StatusBadRequest, map[string]string{"message": "invalid question id"})
		return
	}

	question, err := h.deps.Forum.GetQuestion(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusOK, question)
}

func (h *handlers) createQuestion(w http.ResponseWriter, r *http.Request) {
	var in CreateQuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.json(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	question, err := h.deps.Forum.CreateQuestion(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.json(w, http.StatusCreated, question)
}

func (h *handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	user, _ := h.deps.Sessions.Current()
	h.json(w, http.StatusOK, map[string]any{
		"view": "submit",
		"user": user,
	})
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.deps.Sessions.Current()
	if !ok {
		// The guard should have caught this; keep the response sane anyway.
		h.json(w, http.StatusUnauthorized, map[string]string{"message": "not signed in"})
		return
	}
	h.json(w, http.StatusOK, user)
}

func (h *handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	h.json(w, http.StatusOK, map[string]string{
		"view":     "login",
		"returnTo": guard.ReturnTarget(r, "/"),
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.json(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	user, err := h.deps.Sessions.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		// Inline message next to the form, never a redirect.
		h.json(w, http.StatusUnprocessableEntity, map[string]string{"message": err.Error()})
		return
	}

	h.json(w, http.StatusOK, map[string]any{
		"user":     user,
		"returnTo": guard.ReturnTarget(r, "/"),
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.deps.Sessions.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.deps.Log.Error("failed to encode response", slog.Any("error", err))
	}
}

// fail maps backend errors onto the shell's responses. Authorization
// expiry never surfaces inline: by the time it is seen the session is
// already invalidated, so the shell sends the viewer to sign-in.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apiclient.ErrAuthorizationExpired) {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.deps.Log.ErrorContext(r.Context(), "backend request failed", slog.Any("error", err))
	h.json(w, http.StatusBadGateway, map[string]string{"message": "upstream request failed"})
}
