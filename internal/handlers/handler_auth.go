package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type authHandler struct {
	authService portssvc.AuthSvcFacade
}

// RegisterAuthRoutes registers the public authentication routes.
func RegisterAuthRoutes(r gin.IRouter, authService portssvc.AuthSvcFacade) {
	h := &authHandler{authService: authService}

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}

// login godoc
// @Summary Log in with email and password
// @Description Returns a bearer token for the /api/v1 routes.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Failure 500 {object} dto.ErrorResponse "Login failed"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}
