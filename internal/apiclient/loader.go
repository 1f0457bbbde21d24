package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyShmatok/postagg/shared/domain"
	internal_errors "github.com/SergeyShmatok/postagg/shared/errors"
	"github.com/SergeyShmatok/postagg/shared/utils"
)

const (
	ResourcePosts    = "posts"
	ResourceComments = "comments"
	ResourceAuthor   = "author"
)

func (c *APIClient) GetPosts(ctx context.Context) ([]domain.Post, error) {
	return load[[]domain.Post](ctx, c, ResourcePosts, "/api/slow/posts")
}

func (c *APIClient) GetComments(ctx context.Context, postId domain.PostId) ([]domain.Comment, error) {
	path := fmt.Sprintf("/api/slow/posts/%d/comments", postId)
	return load[[]domain.Comment](ctx, c, ResourceComments, path)
}

func (c *APIClient) GetAuthor(ctx context.Context, authorId domain.AuthorId) (domain.Author, error) {
	path := fmt.Sprintf("/api/authors/%d", authorId)
	return load[domain.Author](ctx, c, ResourceAuthor, path)
}

// load fetches path and decodes the body into T.
func load[T any](ctx context.Context, c *APIClient, resource, path string) (T, error) {
	var value T
	start := time.Now()

	err := c.loadInto(ctx, path, &value)
	if c.observer != nil {
		outcome := "ok"
		if err != nil {
			outcome = internal_errors.Kind(err)
		}
		c.observer.ObserveFetch(resource, outcome, time.Since(start))
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

func (c *APIClient) loadInto(ctx context.Context, path string, target any) error {
	resp, err := c.Fetch(ctx, c.BaseURL+path)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &internal_errors.RequestFailedError{
			Message: statusMessage(resp), StatusCode: resp.StatusCode,
		}
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return internal_errors.ErrEmptyBody
	}
	return utils.Decode(resp.Body, target)
}

// statusMessage is the reason phrase of the status line, e.g. "Not Found".
func statusMessage(resp *Response) string {
	msg := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return msg
}
