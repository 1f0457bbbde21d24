package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyShmatok/postagg/shared/domain"
)

// --- Mock for Store ---

type MockStore struct {
	posts      []domain.Post
	comments   map[domain.PostId][]domain.Comment
	authors    map[domain.AuthorId]domain.Author
	failStatus map[domain.AuthorId]int
}

func (m *MockStore) Posts() []domain.Post {
	return m.posts
}

func (m *MockStore) Comments(postId domain.PostId) ([]domain.Comment, bool) {
	c, ok := m.comments[postId]
	return c, ok
}

func (m *MockStore) Author(authorId domain.AuthorId) (domain.Author, int, bool) {
	a, ok := m.authors[authorId]
	return a, m.failStatus[authorId], ok
}

func newMockStore() *MockStore {
	return &MockStore{
		posts: []domain.Post{{Id: 1, AuthorId: 1, Content: "hello"}},
		comments: map[domain.PostId][]domain.Comment{
			1: {{Id: 1, PostId: 1, AuthorId: 2, Content: "hi"}},
		},
		authors: map[domain.AuthorId]domain.Author{
			1: {Id: 1, Name: "Netology", Avatar: "netology.jpg"},
			2: {Id: 2, Name: "Sber", Avatar: "sber.jpg"},
			3: {Id: 3, Name: "Broken"},
		},
		failStatus: map[domain.AuthorId]int{3: http.StatusInternalServerError},
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// --- Tests ---

func TestGetPosts(t *testing.T) {
	h := New(newMockStore(), 0)
	req := httptest.NewRequest(http.MethodGet, "/api/slow/posts", nil)
	rr := httptest.NewRecorder()

	h.GetPosts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var posts []domain.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Content)
}

func TestGetPostsDelay(t *testing.T) {
	t.Run("waits for the delay", func(t *testing.T) {
		h := New(newMockStore(), 30*time.Millisecond)
		req := httptest.NewRequest(http.MethodGet, "/api/slow/posts", nil)
		rr := httptest.NewRecorder()

		start := time.Now()
		h.GetPosts(rr, req)

		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("stops when the client goes away", func(t *testing.T) {
		h := New(newMockStore(), time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/api/slow/posts", nil).WithContext(ctx)
		rr := httptest.NewRecorder()

		h.GetPosts(rr, req)

		assert.Empty(t, rr.Body.String())
	})
}

func TestGetComments(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantLen    int
	}{
		{name: "existing post", id: "1", wantStatus: http.StatusOK, wantLen: 1},
		{name: "unknown post", id: "42", wantStatus: http.StatusNotFound},
		{name: "invalid id", id: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(newMockStore(), 0)
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/slow/posts/"+tt.id+"/comments", nil), "id", tt.id)
			rr := httptest.NewRecorder()

			h.GetComments(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var comments []domain.Comment
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comments))
				assert.Len(t, comments, tt.wantLen)
			}
		})
	}
}

func TestGetAuthor(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantName   string
	}{
		{name: "existing author", id: "1", wantStatus: http.StatusOK, wantName: "Netology"},
		{name: "injected failure", id: "3", wantStatus: http.StatusInternalServerError},
		{name: "unknown author", id: "99", wantStatus: http.StatusNotFound},
		{name: "invalid id", id: "x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(newMockStore(), time.Hour) // authors are never delayed
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/authors/"+tt.id, nil), "id", tt.id)
			rr := httptest.NewRecorder()

			h.GetAuthor(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var author domain.Author
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &author))
				assert.Equal(t, tt.wantName, author.Name)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	h := New(newMockStore(), 0)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	h.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
