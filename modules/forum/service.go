package forum

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Doer is the slice of the API client the forum service needs. Satisfied
// by *apiclient.Client, which means every call below rides the authorized
// transport and shares its 401 handling.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Service is the typed forum API surface: questions, replies and search.
type Service struct {
	client Doer
}

// NewService creates a forum service over the given API client.
func NewService(client Doer) *Service {
	return &Service{client: client}
}

// ListQuestions fetches a page of questions.
func (s *Service) ListQuestions(ctx context.Context, p ListParams) (*QuestionList, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}

	var list QuestionList
	if err := s.client.Do(ctx, http.MethodGet, "/questions", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetQuestion fetches one question with its replies.
func (s *Service) GetQuestion(ctx context.Context, id int) (*Question, error) {
	var question Question
	if err := s.client.Do(ctx, http.MethodGet, questionPath(id), nil, nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// CreateQuestion submits a new question.
func (s *Service) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*Question, error) {
	var question Question
	if err := s.client.Do(ctx, http.MethodPost, "/questions", nil, in, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// UpdateQuestion edits an existing question.
func (s *Service) UpdateQuestion(ctx context.Context, id int, in CreateQuestionInput) (*Question, error) {
	var question Question
	if err := s.client.Do(ctx, http.MethodPut, questionPath(id), nil, in, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// DeleteQuestion removes a question.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	return s.client.Do(ctx, http.MethodDelete, questionPath(id), nil, nil, nil)
}

// VoteQuestion casts a vote on a question.
func (s *Service) VoteQuestion(ctx context.Context, id int, vote VoteType) error {
	body := map[string]string{"type": string(vote)}
	return s.client.Do(ctx, http.MethodPost, questionPath(id)+"/vote", nil, body, nil)
}

// RepliesByQuestion lists the answers under a question.
func (s *Service) RepliesByQuestion(ctx context.Context, questionID int) ([]Reply, error) {
	var replies []Reply
	if err := s.client.Do(ctx, http.MethodGet, questionPath(questionID)+"/replies", nil, nil, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// CreateReply posts an answer.
func (s *Service) CreateReply(ctx context.Context, in CreateReplyInput) (*Reply, error) {
	var reply Reply
	if err := s.client.Do(ctx, http.MethodPost, "/replies", nil, in, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// UpdateReply edits an answer.
func (s *Service) UpdateReply(ctx context.Context, id int, body string) (*Reply, error) {
	payload := map[string]string{"body": body}
	var reply Reply
	if err := s.client.Do(ctx, http.MethodPut, replyPath(id), nil, payload, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// DeleteReply removes an answer.
func (s *Service) DeleteReply(ctx context.Context, id int) error {
	return s.client.Do(ctx, http.MethodDelete, replyPath(id), nil, nil, nil)
}

// VoteReply casts a vote on an answer.
func (s *Service) VoteReply(ctx context.Context, id int, vote VoteType) error {
	body := map[string]string{"type": string(vote)}
	return s.client.Do(ctx, http.MethodPost, replyPath(id)+"/vote", nil, body, nil)
}

// MarkBestAnswer flags an answer as the accepted one.
func (s *Service) MarkBestAnswer(ctx context.Context, id int) error {
	return s.client.Do(ctx, http.MethodPost, replyPath(id)+"/best-answer", nil, nil, nil)
}

// Search runs a query across questions, replies and users.
func (s *Service) Search(ctx context.Context, query string) (*SearchResults, error) {
	q := url.Values{}
	q.Set("q", query)

	var results SearchResults
	if err := s.client.Do(ctx, http.MethodGet, "/search", q, nil, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

func questionPath(id int) string {
	return fmt.Sprintf("/questions/%d", id)
}

func replyPath(id int) string {
	return fmt.Sprintf("/replies/%d", id)
}
