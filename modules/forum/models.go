package forum

import (
	"time"

	"github.com/utdiscussions/forumkit/pkg/identity"
)

// Question is a discussion thread as the backend serves it.
type Question struct {
	ID         int                `json:"id"`
	Title      string             `json:"title"`
	Body       string             `json:"body"`
	Author     *identity.Identity `json:"author,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  *time.Time         `json:"updatedAt,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
	Category   string             `json:"category,omitempty"`
	Replies    []Reply            `json:"replies,omitempty"`
	Likes      int                `json:"likes"`
	Dislikes   int                `json:"dislikes"`
	Views      int                `json:"views"`
	IsAnswered bool               `json:"isAnswered"`
}

// Reply is one answer under a question.
type Reply struct {
	ID           int                `json:"id"`
	Body         string             `json:"body"`
	Author       *identity.Identity `json:"author,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	Likes        int                `json:"likes"`
	Dislikes     int                `json:"dislikes"`
	IsBestAnswer bool               `json:"isBestAnswer"`
	QuestionID   int                `json:"questionId"`
}

// CreateQuestionInput is the submission form payload.
type CreateQuestionInput struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Tags     []string `json:"tags,omitempty"`
	Category string   `json:"category,omitempty"`
}

// CreateReplyInput posts an answer under a question.
type CreateReplyInput struct {
	Body       string `json:"body"`
	QuestionID int    `json:"questionId"`
}

// VoteType is an up or down vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// ListParams filter and order a question listing.
type ListParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
	SortBy   string
}

// QuestionList is a paged listing.
type QuestionList struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
}

// SearchResults spans all content types.
type SearchResults struct {
	Questions []Question          `json:"questions"`
	Replies   []Reply             `json:"replies"`
	Users     []identity.Identity `json:"users"`
}
