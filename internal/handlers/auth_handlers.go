// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/iitigpt/go-campusgpt/internal/dtos"
	"github.com/iitigpt/go-campusgpt/internal/repository/user"
	"github.com/iitigpt/go-campusgpt/internal/services/user_services"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	AuthService *user_services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *user_services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: service}
}

// validateRegisterInput ensures email and password meet basic rules before
// the service is involved.
func validateRegisterInput(email, password string) string {
	switch {
	case !emailRegex.MatchString(email):
		return "A valid email address is required."
	case password == "":
		return "Password is required."
	}
	return ""
}

// Register handles new account creation and returns the fresh token along
// with the public user fields.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if errMsg := validateRegisterInput(email, req.Password); errMsg != "" {
		writeError(w, errMsg, http.StatusBadRequest)
		return
	}

	created, token, err := h.AuthService.Register(r.Context(), email, req.Password, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			writeError(w, "Email is already registered.", http.StatusBadRequest)
			return
		}
		writeError(w, "Could not create account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, dtos.AuthResponseDTO{
		Message: "Registration successful",
		Token:   token,
		User:    dtos.FromDomain(*created),
	})
}

// Login validates credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable in the response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user_services.ErrInvalidCredentials) {
			writeError(w, "Invalid email or password.", http.StatusBadRequest)
			return
		}
		writeError(w, "Could not log in", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dtos.AuthResponseDTO{
		Message: "Login successful",
		Token:   token,
		User:    dtos.FromDomain(*account),
	})
}
