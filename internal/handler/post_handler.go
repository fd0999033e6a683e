package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/service"
)

type DataResponse struct {
	Data interface{} `json:"data"`
}

type MetaResponse struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

type ListResponse struct {
	Data []models.Post `json:"data"`
	Meta MetaResponse  `json:"meta"`
}

type createPostRequest struct {
	Title       string     `json:"title" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	IsDraft     *bool      `json:"is_draft" validate:"required"`
	PublishedAt *time.Time `json:"published_at"`
}

type updatePostRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Content     *string    `json:"content" validate:"omitempty,min=1"`
	IsDraft     *bool      `json:"is_draft"`
	PublishedAt *time.Time `json:"published_at"`
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	posts, total, err := h.PostService.ListPosts(r.Context(), page)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, ListResponse{
		Data: posts,
		Meta: MetaResponse{
			Total:   total,
			Page:    page,
			PerPage: service.PageSize,
		},
	}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, DataResponse{Data: post}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID:    user.UserID,
		Title:       req.Title,
		Content:     req.Content,
		IsDraft:     *req.IsDraft,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, DataResponse{Data: post}, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var req updatePostRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	// a present-but-null published_at clears the schedule, an absent one
	// leaves it alone
	var rawFields map[string]json.RawMessage
	if err := json.Unmarshal(body, &rawFields); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	_, publishedAtSet := rawFields["published_at"]

	post, err := h.PostService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:         postID,
		ActorID:        user.UserID,
		Title:          req.Title,
		Content:        req.Content,
		IsDraft:        req.IsDraft,
		PublishedAt:    req.PublishedAt,
		PublishedAtSet: publishedAtSet,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, DataResponse{Data: post}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	if err := h.PostService.DeletePost(r.Context(), postID, user.UserID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
