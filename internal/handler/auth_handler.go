package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/websopen/web-valencio/internal/model"
	"github.com/websopen/web-valencio/internal/response"
	"github.com/websopen/web-valencio/internal/service"
	"github.com/websopen/web-valencio/internal/validator"
)

// AuthHandler handles the admin activation and session endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	storeService *service.StoreService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, storeService *service.StoreService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		storeService: storeService,
	}
}

// ValidateToken godoc
// POST /api/auth/validate-token
// Checks a hub-issued token without consuming it. Idempotent.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req model.ValidateTokenRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	alreadyAssociated, err := h.authService.ValidateHubToken(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			response.Fail(c, http.StatusUnauthorized, response.ErrExpiredToken)
		case errors.Is(err, service.ErrInvalidToken):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidToken)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	c.JSON(http.StatusOK, model.TokenValidationResponse{
		Valid:             true,
		AlreadyAssociated: alreadyAssociated,
	})
}

// Activate godoc
// POST /api/auth/activate
// Completes admin activation with token + PIN and issues the session cookie.
// Failures are deliberately generic: the caller learns pass/fail only.
func (h *AuthHandler) Activate(c *gin.Context) {
	var req model.ActivateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	roleValue, err := h.authService.Activate(c.Request.Context(), req.Token, req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrActivationFailed) {
			response.Fail(c, http.StatusUnauthorized, response.ErrActivationFailed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.issueSessionCookie(c, roleValue)
	c.JSON(http.StatusOK, model.ActivationResponse{Success: true})
}

// Check godoc
// GET /api/auth/check
// Reports the caller's admin status from their session cookie. No side effects.
func (h *AuthHandler) Check(c *gin.Context) {
	isAdmin := false
	if cookie, err := c.Cookie(service.CookieName); err == nil {
		isAdmin = h.authService.IsAdminSession(cookie)
	}

	onboardingPending := false
	if isAdmin {
		onboardingPending = !h.storeService.HasData(c.Request.Context())
	}

	c.JSON(http.StatusOK, model.AuthCheckResponse{
		IsAdmin:           isAdmin,
		OnboardingPending: onboardingPending,
	})
}

// HubLogin godoc
// GET /api/hub-login?hub_token=...
// Direct entry from the hub: decodes the token, issues the session cookie
// and redirects by role.
func (h *AuthHandler) HubLogin(c *gin.Context) {
	tokenStr := c.Query("hub_token")
	if tokenStr == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrTokenRequired)
		return
	}

	claims, err := h.authService.DecodeHubToken(tokenStr)
	if err != nil || claims.Role == "" {
		if errors.Is(err, service.ErrTokenExpired) {
			response.Fail(c, http.StatusUnauthorized, response.ErrExpiredToken)
			return
		}
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidToken)
		return
	}

	roleValue := service.MapRole(claims.Role)
	h.issueSessionCookie(c, roleValue)

	redirect := "/"
	if claims.Role == service.RoleAdmin {
		redirect = "/admin"
	}
	c.Redirect(http.StatusFound, redirect)
}

// Logout godoc
// GET /api/logout
// Clears the session cookie and redirects home as guest.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(service.CookieName, "", -1, "/", "", true, true)
	c.Redirect(http.StatusFound, "/")
}

// issueSessionCookie sets the signed session cookie. No Max-Age: admin
// access ends with the browser session.
func (h *AuthHandler) issueSessionCookie(c *gin.Context, roleValue string) {
	value := h.authService.SignSessionValue(roleValue)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(service.CookieName, value, 0, "/", "", true, true)
}
