package forum_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utdiscussions/forumkit/modules/forum"
)

// recordingDoer captures the request the service builds.
type recordingDoer struct {
	method string
	path   string
	query  url.Values
	body   any
}

func (d *recordingDoer) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	d.method, d.path, d.query, d.body = method, path, query, body
	return nil
}

func TestService_RequestShapes(t *testing.T) {
	t.Parallel()

	t.Run("listing carries all filters", func(t *testing.T) {
		t.Parallel()

		d := &recordingDoer{}
		svc := forum.NewService(d)

		_, err := svc.ListQuestions(context.Background(), forum.ListParams{
			Page:     2,
			Limit:    25,
			Category: "Physics",
			Search:   "midterm",
			SortBy:   "popular",
		})
		require.NoError(t, err)

		assert.Equal(t, "GET", d.method)
		assert.Equal(t, "/questions", d.path)
		assert.Equal(t, "2", d.query.Get("page"))
		assert.Equal(t, "25", d.query.Get("limit"))
		assert.Equal(t, "Physics", d.query.Get("category"))
		assert.Equal(t, "midterm", d.query.Get("search"))
		assert.Equal(t, "popular", d.query.Get("sortBy"))
	})

	t.Run("zero params omitted", func(t *testing.T) {
		t.Parallel()

		d := &recordingDoer{}
		svc := forum.NewService(d)

		_, err := svc.ListQuestions(context.Background(), forum.ListParams{})
		require.NoError(t, err)
		assert.Empty(t, d.query)
	})

	t.Run("vote posts the direction", func(t *testing.T) {
		t.Parallel()

		d := &recordingDoer{}
		svc := forum.NewService(d)

		require.NoError(t, svc.VoteQuestion(context.Background(), 7, forum.VoteDown))
		assert.Equal(t, "POST", d.method)
		assert.Equal(t, "/questions/7/vote", d.path)
		assert.Equal(t, map[string]string{"type": "down"}, d.body)
	})

	t.Run("best answer path", func(t *testing.T) {
		t.Parallel()

		d := &recordingDoer{}
		svc := forum.NewService(d)

		require.NoError(t, svc.MarkBestAnswer(context.Background(), 12))
		assert.Equal(t, "/replies/12/best-answer", d.path)
	})

	t.Run("search query", func(t *testing.T) {
		t.Parallel()

		d := &recordingDoer{}
		svc := forum.NewService(d)

		_, err := svc.Search(context.Background(), "linked list")
		require.NoError(t, err)
		assert.Equal(t, "/search", d.path)
		assert.Equal(t, "linked list", d.query.Get("q"))
	})
}
