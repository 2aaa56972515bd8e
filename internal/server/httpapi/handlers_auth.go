package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/and161185/tonefit/internal/errs"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&req); err != nil {
		return req, false
	}
	return req, true
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, err := s.auth.Register(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.writeError(w, r, err, "Registration failed")
		return
	}
	writeMessage(w, "User created successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	tok, _, err := s.auth.LoginWithIP(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		s.writeError(w, r, err, "Incorrect email or password")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFromCtx(r.Context())
	u, err := s.auth.CurrentUser(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, meResponse{Email: u.Email, ID: u.ID.String()})
}
