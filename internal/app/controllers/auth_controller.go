// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/middleware"
)

// AuthController handles roster login for API clients
type AuthController struct {
	authService services.AuthService
	auth        *middleware.AuthMiddleware
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, auth *middleware.AuthMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		auth:        auth,
		logger:      logger,
	}
}

// Login handles roster login
// @Summary Roster login
// @Description Checks an ID and name against the operator roster and starts a session cookie. The name is matched case-insensitively. Any session the caller already holds is ended, also on a mismatch.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Roster credentials"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "ID and name do not match"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		// an incomplete login still ends the previous session
		c.auth.ClearSession(ctx)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	entry, err := c.authService.Login(req.ID, req.Name)
	if err != nil {
		c.logger.Warn().Str("id", req.ID).Msg("Login failed")
		c.auth.ClearSession(ctx)
		middleware.HandleAPIError(ctx, err)
		return
	}

	if old, ok := middleware.CurrentSession(ctx); ok {
		c.auth.Sessions().Destroy(old.ID)
	}
	s := c.auth.Sessions().Create(entry)
	c.auth.SetSessionCookie(ctx, s)
	c.logger.Info().Str("id", entry.ID).Msg("Operator logged in")

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionResponse{ID: entry.ID, Name: entry.Name}, "Login successful"))
}

// Logout ends the current session
// @Summary Logout
// @Description Destroys the session and expires the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.auth.ClearSession(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logged out"))
}

// Me returns the logged-in identity
// @Summary Current operator
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	s, ok := middleware.CurrentSession(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SessionResponse{ID: s.Identity.ID, Name: s.Identity.Name}, ""))
}
