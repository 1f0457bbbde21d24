package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	internal_errors "github.com/SergeyShmatok/postagg/shared/errors"
	"github.com/SergeyShmatok/postagg/shared/logger"
	"github.com/SergeyShmatok/postagg/shared/utils"
)

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	if err := h.wait(r.Context()); err != nil {
		return
	}
	utils.WriteJSON(w, h.store.Posts(), http.StatusOK)
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	postId, err := parseId(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.wait(r.Context()); err != nil {
		return
	}

	comments, ok := h.store.Comments(postId)
	if !ok {
		utils.WriteErrorAndStatusCode(w, &internal_errors.RequestFailedError{
			Message: fmt.Sprintf("post %d not found", postId), StatusCode: http.StatusNotFound,
		})
		return
	}
	utils.WriteJSON(w, comments, http.StatusOK)
}

func (h *Handler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	authorId, err := parseId(r, "id")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	author, failStatus, ok := h.store.Author(authorId)
	if !ok {
		utils.WriteErrorAndStatusCode(w, &internal_errors.RequestFailedError{
			Message: fmt.Sprintf("author %d not found", authorId), StatusCode: http.StatusNotFound,
		})
		return
	}
	if failStatus != 0 {
		logger.Log.Debug("injected author failure", "author_id", authorId, "status", failStatus)
		utils.WriteErrorAndStatusCode(w, &internal_errors.RequestFailedError{
			Message: http.StatusText(failStatus), StatusCode: failStatus,
		})
		return
	}
	utils.WriteJSON(w, author, http.StatusOK)
}

func parseId(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		return 0, &internal_errors.RequestFailedError{Message: "invalid id", StatusCode: http.StatusBadRequest}
	}
	return id, nil
}
