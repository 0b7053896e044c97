package controllers

import (
	"net/http"

	"github.com/tcghub/tcghub-backend/api/middleware"
	"github.com/tcghub/tcghub-backend/api/responses"
	"github.com/tcghub/tcghub-backend/api/validators"
	authservice "github.com/tcghub/tcghub-backend/internal/auth"
	pkgauth "github.com/tcghub/tcghub-backend/pkg/auth"
	"github.com/tcghub/tcghub-backend/pkg/config"
	pkgerrors "github.com/tcghub/tcghub-backend/pkg/errors"
)

// AuthController handles registration and session endpoints.
type AuthController struct {
	service authservice.Service
	jwtCfg  config.JWTConfig
}

// NewAuthController builds the auth controller.
func NewAuthController(service authservice.Service, jwtCfg config.JWTConfig) *AuthController {
	return &AuthController{service: service, jwtCfg: jwtCfg}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input authservice.RegisterInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	profile, err := c.service.Register(r.Context(), input)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusCreated, profile)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input authservice.LoginInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	pair, err := c.service.Login(r.Context(), input)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, pair)
}

type refreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var input refreshRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	claims, err := pkgauth.ParseAccessToken(c.jwtCfg, input.AccessToken)
	if err != nil {
		responses.WriteError(w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
		return
	}
	pair, err := c.service.Refresh(r.Context(), claims, input.RefreshToken)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, pair)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	accessID, ok := middleware.AccessIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}
	if err := c.service.Logout(r.Context(), accessID); err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// UpdateProfile edits the bio/birthday of the authenticated account.
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}
	var input authservice.UpdateProfileInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(w, err)
		return
	}
	profile, err := c.service.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, profile)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}
	profile, err := c.service.Me(r.Context(), userID)
	if err != nil {
		responses.WriteError(w, err)
		return
	}
	responses.WriteSuccess(w, http.StatusOK, profile)
}
