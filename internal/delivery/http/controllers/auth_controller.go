package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "brandexpo/internal/delivery/http/helpers"
	"brandexpo/internal/delivery/http/middleware"
	"brandexpo/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	} else if len(s.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// SignInRequest is the request body for POST /auth/login
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l SignInRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// OAuthCallbackRequest is the request body for POST /auth/oauth/callback
type OAuthCallbackRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (o OAuthCallbackRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(o.Code) == "" {
		errs = append(errs, "code is required")
	}
	return errs
}

// SessionResponse is the response body for the sign-up and sign-in endpoints.
type SessionResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	Profile   *domain.Profile `json:"profile"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Registers a password identity with role "user" and returns a session token. Password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} helpers.APIResponse "data contains the session token and profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, profile, err := c.Service.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, SessionResponse{Token: token, TokenType: "Bearer", Profile: profile})
}

// SignIn godoc
// @Summary Sign in with email and password
// @Description Verifies the password and returns a session token. Unknown emails and wrong passwords both fail with 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains the session token and profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, profile, err := c.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SessionResponse{Token: token, TokenType: "Bearer", Profile: profile})
}

// OAuthCallback godoc
// @Summary Complete an OAuth sign-in
// @Description Exchanges the authorization code with the provider, registers the identity on first sign-in, and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body OAuthCallbackRequest true "Authorization code"
// @Success 200 {object} helpers.APIResponse "data contains the session token and profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/oauth/callback [post]
func (c *AuthController) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	var req OAuthCallbackRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, profile, err := c.Service.OAuthSignIn(r.Context(), req.Code)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SessionResponse{Token: token, TokenType: "Bearer", Profile: profile})
}

// GetMe godoc
// @Summary Get the caller's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/me [get]
func (c *AuthController) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.GetProfile(r.Context(), actor.ID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, profile)
}
