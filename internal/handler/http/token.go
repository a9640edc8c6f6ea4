package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// tokenResponse carries a freshly signed access token.
type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// createToken handles POST /token/new
func (s *Server) createToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBindingError(w, err.Error())
		return
	}

	if !s.tokens.ValidCredentials(req.Username, req.Password) {
		writeErrorDocument(w, http.StatusUnauthorized, "TokenResource", "Invalid credentials.", "401")
		return
	}

	token, expiresAt, err := s.tokens.IssueToken(req.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue token")
		writeErrorDocument(w, http.StatusInternalServerError, "TokenResource", "An unexpected error occurred.", "500")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiresAt})
}
