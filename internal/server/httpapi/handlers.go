package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/secret"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
)

const jwtCookieName = "jwt"

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Requires2FA bool   `json:"requires2FA"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verify2FARequest struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	Code           string `json:"2FACode"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type twoFactorAuthResponse struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !s.decode(w, r, &req) {
		return
	}

	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	password, err := domain.ParsePassword(secret.New(req.Password))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if err := s.sessions.Signup(r.Context(), domain.NewUser(email, password, req.Requires2FA)); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully."})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	password, err := domain.ParsePassword(secret.New(req.Password))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	result, err := s.sessions.Login(r.Context(), email, password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if result.Requires2FA {
		// No cookie yet: the session starts when the challenge is answered.
		s.writeJSON(w, http.StatusPartialContent, twoFactorAuthResponse{
			Message:        "2FA required",
			LoginAttemptID: result.LoginAttemptID.String(),
		})
		return
	}

	s.setAuthCookie(w, result.Token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleVerify2FA(w http.ResponseWriter, r *http.Request) {
	var req verify2FARequest
	if !s.decode(w, r, &req) {
		return
	}

	email, err := domain.ParseEmail(req.Email)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	id, err := domain.ParseLoginAttemptID(req.LoginAttemptID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	code, err := domain.ParseTwoFACode(req.Code)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := s.sessions.Verify2FA(r.Context(), email, id, code)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.setAuthCookie(w, token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	if _, err := s.sessions.VerifyToken(r.Context(), req.Token); err != nil {
		s.writeError(w, http.StatusUnauthorized, "Invalid auth token")
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(jwtCookieName)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing auth token")
		return
	}

	if err := s.sessions.Logout(r.Context(), cookie.Value); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.clearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "Malformed request body")
		return false
	}
	return true
}

// writeServiceError maps service-layer failures onto the boundary
// contract. Anything unrecognized is logged and reported as a generic 500
// so internals never leak to the caller.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeError(w, http.StatusConflict, "User already exists")
	case errors.Is(err, common.ErrorValidation):
		s.writeError(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, common.ErrorIncorrectCredentials):
		s.writeError(w, http.StatusUnauthorized, "Incorrect credentials")
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked):
		s.writeError(w, http.StatusUnauthorized, "Invalid auth token")
	default:
		s.logger.Error(r.Context(), "unexpected error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Unexpected error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) setAuthCookie(w http.ResponseWriter, token secret.String) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    token.Expose(),
		Path:     "/",
		MaxAge:   int(s.tokenValidity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
