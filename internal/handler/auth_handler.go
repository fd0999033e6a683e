package handlers

import (
	"encoding/json"
	"net/http"

	"blogapi/internal/middleware"
	"blogapi/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserEnvelope struct {
	User interface{} `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, UserEnvelope{User: user}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	// drop whatever session the request already carried so a successful
	// login never reuses a pre-login session id
	if cookie, err := r.Cookie(h.Cfg.SessionCookie); err == nil && cookie.Value != "" {
		_ = h.AuthService.Logout(r.Context(), cookie.Value)
	}

	user, session, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.SessionCookie,
		Value:    session.SessionID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	WriteJSON(w, UserEnvelope{User: user}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		WriteError(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	if cookie, err := r.Cookie(h.Cfg.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.AuthService.Logout(r.Context(), cookie.Value); err != nil {
			h.writeServiceError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusNoContent)
}
