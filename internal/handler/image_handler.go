package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"blogapi/internal/middleware"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, fmt.Sprintf("File too large (max %d MB)",
			h.Cfg.MaxUploadSize/(1024*1024)), http.StatusUnprocessableEntity)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Missing image file", http.StatusUnprocessableEntity)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		WriteError(w, "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP", http.StatusUnprocessableEntity)
		return
	}

	image, err := h.PostService.AddImage(r.Context(), postID, user.UserID, header.Filename, file, header.Size)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, DataResponse{Data: image}, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	postID := vars["id"]
	imageID := vars["imageId"]

	if err := h.PostService.DeleteImage(r.Context(), postID, imageID, user.UserID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
