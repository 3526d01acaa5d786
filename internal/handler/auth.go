package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pawhaus/dog-adoption/internal/service"
)

// AuthHandler exposes registration and login over HTTP.
//
// Both endpoints are public — they're the only routes mounted outside the
// RequireAuth middleware.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// credentialsRequest is the body for both /register and /login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the /login success body.
type tokenResponse struct {
	Token string `json:"token"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/register
// BODY: {"username": "alice", "password": "password123"}
// 201 on success; 400 on validation failure or a taken username.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("register: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid JSON body"})
		return
	}

	if err := h.auth.Register(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// HandleLogin verifies credentials and returns a bearer token.
//
// HTTP: POST /api/login
// 200 {"token": "..."} on success; 401 on bad credentials.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("login: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid JSON body"})
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
