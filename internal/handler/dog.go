package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pawhaus/dog-adoption/internal/auth"
	"github.com/pawhaus/dog-adoption/internal/service"
)

// DogHandler exposes the dog registry over HTTP.
//
// Every route here sits behind auth.RequireAuth, so UserIDFromContext is
// guaranteed to succeed — callerID() still checks, because a handler wired
// without the middleware should fail loudly, not act as an anonymous user.
type DogHandler struct {
	dogs   *service.DogService
	logger *slog.Logger
}

func NewDogHandler(dogs *service.DogService, logger *slog.Logger) *DogHandler {
	return &DogHandler{dogs: dogs, logger: logger}
}

// registerDogRequest is the body for POST /api/dogs/register.
type registerDogRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// adoptRequest is the body for POST /api/dogs/{id}/adopt.
type adoptRequest struct {
	Message string `json:"message"`
}

// HandleListAvailable lists dogs currently up for adoption.
//
// HTTP: GET /api/dogs?page=1&limit=10
// RESPONSE: {"dogs":[...], "total":15, "pages":2, "currentPage":1}
func (h *DogHandler) HandleListAvailable(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	page, limit := parsePagination(r)
	result, err := h.dogs.ListAvailable(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleRegister creates a listing owned by the caller.
//
// HTTP: POST /api/dogs/register
// BODY: {"name": "Buddy", "description": "Friendly dog"}
// 201 with the created Dog on success.
func (h *DogHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req registerDogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("register dog: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid JSON body"})
		return
	}

	dog, err := h.dogs.Register(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dog)
}

// HandleAdopt adopts the dog in the URL on behalf of the caller.
//
// HTTP: POST /api/dogs/{id}/adopt
// BODY: {"message": "Thanks for Max!"}   (message optional)
// 200 with the updated Dog; 404 unknown dog; 400 already adopted or own dog.
func (h *DogHandler) HandleAdopt(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	// An empty or missing body is fine — the adoption message is optional.
	var req adoptRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	dog, err := h.dogs.Adopt(r.Context(), r.PathValue("id"), userID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dog)
}

// HandleRemove deletes the caller's own available listing.
//
// HTTP: DELETE /api/dogs/{id}
// 200 {"message"}; 404 unknown; 400 adopted; 403 not the owner.
func (h *DogHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.dogs.Remove(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Dog removed successfully"})
}

// HandleListRegistered lists the caller's own listings, optionally filtered
// by status.
//
// HTTP: GET /api/dogs/registered?status=adopted&page=1&limit=10
func (h *DogHandler) HandleListRegistered(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	page, limit := parsePagination(r)
	result, err := h.dogs.ListByOwner(r.Context(), userID, r.URL.Query().Get("status"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleListAdopted lists dogs the caller has adopted.
//
// HTTP: GET /api/dogs/adopted?page=1&limit=10
func (h *DogHandler) HandleListAdopted(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	page, limit := parsePagination(r)
	result, err := h.dogs.ListAdoptedBy(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// callerID extracts the authenticated user from the request context and
// writes a 401 if it's somehow absent.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: "valid authentication required"})
		return "", false
	}
	return userID, true
}

// parsePagination reads ?page and ?limit, leaving zero values for anything
// missing or non-numeric — the service applies the defaults (page 1,
// limit 10). Values are truncated to integers; there is no upper bound.
func parsePagination(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	return page, limit
}
