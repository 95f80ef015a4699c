package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/campusxchange/server/internal/errs"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates a campus account plus its profile row.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad request body", errs.ErrValidation))
		return
	}

	userID, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"userId": userID})
}

// handleLogin authenticates and returns a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad request body", errs.ErrValidation))
		return
	}

	tok, u, err := s.auth.LoginWithIP(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": tok.AccessToken,
		"expiresAt":   tok.ExpiresAt.Format(time.RFC3339),
		"userId":      u.ID.String(),
		"email":       u.Email,
	})
}
