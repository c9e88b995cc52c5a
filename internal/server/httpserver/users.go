package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries the identifier configured by login_identifier, either
// in Identifier or in the field named after the mode. The other named field
// is ignored.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// now is a seam for tests.
var now = time.Now

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.deps.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	identifier, err := s.loginIdentifier(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	issuedAt := now()
	token, user, err := s.deps.Users.Login(r.Context(), identifier, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		TokenType: common.BearerScheme,
		ExpiresAt: issuedAt.Add(s.cfg.AccessTokenValidityDuration).UTC(),
		User:      user,
	})
}

// loginIdentifier reads Identifier or the body field named by the login mode.
func (s *HTTPServer) loginIdentifier(req LoginRequest) (string, error) {
	if req.Identifier != "" {
		return req.Identifier, nil
	}

	identifier, field := req.Username, config.LoginByUsername
	if s.cfg.LoginIdentifier == config.LoginByEmail {
		identifier, field = req.Email, config.LoginByEmail
	}
	if strings.TrimSpace(identifier) == "" {
		return "", common.NewValidationError(field, "required")
	}
	return identifier, nil
}

func (s *HTTPServer) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	user, err := s.deps.Users.Profile(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.deps.Users.UpdateProfile(r.Context(), userID, services.ProfileUpdate{
		Username:    req.Username,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	if err := s.deps.Users.DeleteAccount(r.Context(), userID); err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: "account deleted"})
}
