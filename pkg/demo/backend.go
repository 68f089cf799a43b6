package demo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/utdiscussions/forumkit/modules/forum"
	"github.com/utdiscussions/forumkit/pkg/identity"
	"github.com/utdiscussions/forumkit/pkg/session"
)

// Backend is the canned forum backend for demo mode. It mimics the real
// service's REST contract over an in-memory dataset so the entire client
// stack — session manager, authorized transport, guard — runs unchanged
// with no network. Every request is logged so demo data is never mistaken
// for the real thing.
type Backend struct {
	mu        sync.Mutex
	users     map[string]identity.Identity
	questions map[int]*forum.Question
	nextQID   int
	nextRID   int
	log       *slog.Logger
}

// BackendOption configures the demo backend.
type BackendOption func(*Backend)

// WithLogger sets the structured logger, ignoring nil
func WithLogger(log *slog.Logger) BackendOption {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBackend creates a demo backend seeded with the sample dataset.
func NewBackend(opts ...BackendOption) *Backend {
	b := &Backend{
		users:     make(map[string]identity.Identity),
		questions: make(map[int]*forum.Question),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	seed(b)
	return b
}

// Handler returns the REST surface of the demo backend.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.logRequests)

	r.Post("/auth/login", b.login)
	r.Post("/auth/register", b.register)
	r.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Put("/users/me", b.updateProfile)
	r.Get("/users/{id}", b.getUser)
	r.Get("/users/{id}/activity", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})

	r.Get("/questions", b.listQuestions)
	r.Get("/questions/{id}", b.getQuestion)
	r.Post("/questions", b.createQuestion)
	r.Post("/questions/{id}/vote", b.voteQuestion)
	r.Get("/questions/{id}/replies", b.listReplies)
	r.Post("/replies", b.createReply)
	r.Post("/replies/{id}/best-answer", b.markBestAnswer)

	r.Get("/search", b.search)

	return r
}

// logRequests marks every served request as demo traffic.
func (b *Backend) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.log.InfoContext(r.Context(), "demo backend served request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" || in.Password == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}

	handle := in.Email
	if at := strings.Index(handle, "@"); at > 0 {
		handle = handle[:at]
	}

	user := identity.Identity{
		ID:          uuid.NewString(),
		Handle:      handle,
		Email:       in.Email,
		DisplayName: "UTD Student",
		Avatar:      avatarURL(handle),
		JoinedAt:    time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		Reputation:  150,
		Verified:    true,
	}

	b.mu.Lock()
	b.users[user.ID] = user
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": "demo-token"})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var in session.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Handle == "" || in.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid registration"})
		return
	}

	user := identity.Identity{
		ID:          uuid.NewString(),
		Handle:      in.Handle,
		Email:       in.Email,
		DisplayName: in.DisplayName,
		Avatar:      avatarURL(in.DisplayName),
		JoinedAt:    time.Now().UTC(),
		Reputation:  0,
		Verified:    false,
	}

	b.mu.Lock()
	b.users[user.ID] = user
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"user": user, "token": "demo-token"})
}

// bearerUser resolves the request's bearer credential to a known user.
func (b *Backend) bearerUser(r *http.Request) (identity.Identity, bool) {
	auth := r.Header.Get("Authorization")
	id, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return identity.Identity{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.users[id]
	return user, ok
}

func (b *Backend) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := b.bearerUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var update identity.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid update"})
		return
	}

	updated := user.Apply(update)

	b.mu.Lock()
	b.users[user.ID] = updated
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, updated)
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "me" {
		user, ok := b.bearerUser(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, user)
		return
	}

	b.mu.Lock()
	user, ok := b.users[id]
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "user not found"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (b *Backend) listQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	b.mu.Lock()
	questions := make([]forum.Question, 0, len(b.questions))
	for _, question := range b.questions {
		questions = append(questions, *question)
	}
	b.mu.Unlock()

	questions = filterQuestions(questions, q.Get("search"), q.Get("category"))
	sortQuestions(questions, q.Get("sortBy"))

	total := len(questions)
	questions = paginate(questions, q)

	writeJSON(w, http.StatusOK, forum.QuestionList{Questions: questions, Total: total})
}

func (b *Backend) getQuestion(w http.ResponseWriter, r *http.Request) {
	question, ok := b.questionFromPath(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "question not found"})
		return
	}

	b.mu.Lock()
	question.Views++
	snapshot := *question
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, snapshot)
}

func (b *Backend) createQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := b.bearerUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var in forum.CreateQuestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid question"})
		return
	}

	b.mu.Lock()
	b.nextQID++
	question := &forum.Question{
		ID:        b.nextQID,
		Title:     in.Title,
		Body:      in.Body,
		Author:    &user,
		CreatedAt: time.Now().UTC(),
		Tags:      in.Tags,
		Category:  in.Category,
	}
	b.questions[question.ID] = question
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, question)
}

func (b *Backend) voteQuestion(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.bearerUser(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	question, ok := b.questionFromPath(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "question not found"})
		return
	}

	var in struct {
		Type forum.VoteType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid vote"})
		return
	}

	b.mu.Lock()
	switch in.Type {
	case forum.VoteUp:
		question.Likes++
	case forum.VoteDown:
		question.Dislikes++
	}
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listReplies(w http.ResponseWriter, r *http.Request) {
	question, ok := b.questionFromPath(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "question not found"})
		return
	}

	b.mu.Lock()
	replies := append([]forum.Reply(nil), question.Replies...)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, replies)
}

func (b *Backend) createReply(w http.ResponseWriter, r *http.Request) {
	user, ok := b.bearerUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var in forum.CreateReplyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Body == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid reply"})
		return
	}

	b.mu.Lock()
	question, exists := b.questions[in.QuestionID]
	if !exists {
		b.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "question not found"})
		return
	}

	b.nextRID++
	reply := forum.Reply{
		ID:         b.nextRID,
		Body:       in.Body,
		Author:     &user,
		CreatedAt:  time.Now().UTC(),
		QuestionID: in.QuestionID,
	}
	question.Replies = append(question.Replies, reply)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, reply)
}

func (b *Backend) markBestAnswer(w http.ResponseWriter, r *http.Request) {
	if _, ok := b.bearerUser(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid reply id"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, question := range b.questions {
		for i := range question.Replies {
			if question.Replies[i].ID == id {
				question.Replies[i].IsBestAnswer = true
				question.IsAnswered = true
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "reply not found"})
}

func (b *Backend) search(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))

	b.mu.Lock()
	questions := make([]forum.Question, 0, len(b.questions))
	for _, question := range b.questions {
		questions = append(questions, *question)
	}
	b.mu.Unlock()

	results := forum.SearchResults{
		Questions: filterQuestions(questions, query, ""),
		Replies:   []forum.Reply{},
		Users:     []identity.Identity{},
	}
	sortQuestions(results.Questions, "")

	writeJSON(w, http.StatusOK, results)
}

func (b *Backend) questionFromPath(r *http.Request) (*forum.Question, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return nil, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	question, ok := b.questions[id]
	return question, ok
}

// filterQuestions applies the listing's search and category filters:
// search matches title, body or any tag, case-insensitively.
func filterQuestions(questions []forum.Question, search, category string) []forum.Question {
	search = strings.ToLower(search)
	out := make([]forum.Question, 0, len(questions))
	for _, q := range questions {
		if category != "" && !strings.EqualFold(q.Category, category) {
			continue
		}
		if search != "" {
			hit := strings.Contains(strings.ToLower(q.Title), search) ||
				strings.Contains(strings.ToLower(q.Body), search)
			for _, tag := range q.Tags {
				hit = hit || strings.Contains(strings.ToLower(tag), search)
			}
			if !hit {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}

// sortQuestions orders the listing: most popular, most replies,
// unanswered first, or newest first by default.
func sortQuestions(questions []forum.Question, sortBy string) {
	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i], questions[j]
		switch sortBy {
		case "popular":
			return a.Likes > b.Likes
		case "replies":
			return len(a.Replies) > len(b.Replies)
		case "unanswered":
			return !a.IsAnswered && b.IsAnswered
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

func paginate(questions []forum.Question, q url.Values) []forum.Question {
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, _ := strconv.Atoi(q.Get("page"))
	if limit <= 0 {
		return questions
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(questions) {
		return []forum.Question{}
	}
	end := min(start+limit, len(questions))
	return questions[start:end]
}

func avatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=C75B12&color=fff",
		url.QueryEscape(strings.ReplaceAll(name, " ", "+")))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
