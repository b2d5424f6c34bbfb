package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/dto"
	"github.com/SscSPs/journal_workflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// RegisterUserRoutes registers routes related to users.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	registerValidators()
	h := &userHandler{userService: userService}

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id/role", h.updateUserRole)
		users.DELETE("/:id", h.deleteUser)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a user with the given role. Admin only.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Failure 500 {object} dto.ErrorResponse "Failed to create user"
// @Security BearerAuth
// @Router /api/v1/users [post]
func (h *userHandler) createUser(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, actingUserID)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User created successfully", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Users may read themselves; anyone else requires ADMIN.
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get user"
// @Security BearerAuth
// @Router /api/v1/users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"), actingUserID)
	if err != nil {
		respondError(c, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 500 {object} dto.ErrorResponse "Failed to list users"
// @Security BearerAuth
// @Router /api/v1/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params, actingUserID)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// updateUserRole godoc
// @Summary Change a user's role
// @Description Admin only. Admins cannot change their own role.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   role body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 422 {object} dto.ErrorResponse "Unknown role"
// @Failure 500 {object} dto.ErrorResponse "Failed to update user role"
// @Security BearerAuth
// @Router /api/v1/users/{id}/role [put]
func (h *userHandler) updateUserRole(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUserRole(c.Request.Context(), c.Param("id"), req, actingUserID)
	if err != nil {
		respondError(c, err, "Failed to update user role")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Deactivate a user
// @Description Admin only. Admins cannot deactivate themselves.
// @Tags users
// @Param   id path string true "User ID"
// @Success 204 "User deactivated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to deactivate user"
// @Security BearerAuth
// @Router /api/v1/users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), c.Param("id"), actingUserID); err != nil {
		respondError(c, err, "Failed to deactivate user")
		return
	}
	c.Status(http.StatusNoContent)
}
