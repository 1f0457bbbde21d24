package handler

import (
	"context"
	"time"

	"github.com/SergeyShmatok/postagg/shared/domain"
)

// Store is the read-only dataset behind the slow API.
type Store interface {
	Posts() []domain.Post
	Comments(postId domain.PostId) ([]domain.Comment, bool)
	Author(authorId domain.AuthorId) (domain.Author, int, bool)
}

type Handler struct {
	store Store
	delay time.Duration
}

// New creates a handler; delay is applied to every /api/slow/* request.
func New(store Store, delay time.Duration) *Handler {
	return &Handler{store: store, delay: delay}
}

// wait sleeps for the configured delay unless the client goes away first.
func (h *Handler) wait(ctx context.Context) error {
	if h.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(h.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
