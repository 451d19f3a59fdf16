package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/middleware"
)

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// callerOrAbort returns the caller set by the auth middleware
func callerOrAbort(ctx *gin.Context) (auth.Caller, bool) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return caller, ok
}

// ListUsers retrieves all users
// @Summary List users
// @Description Retrieves all users sorted by roll number, optionally filtered by role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(student, placementCoordinator, admin)
// @Success 200 {object} dto.UsersResponse "Users retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "No users found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var role *models.Role
	if r := ctx.Query("role"); r != "" {
		parsed := models.Role(r)
		role = &parsed
	}

	users, err := c.userService.ListUsers(ctx.Request.Context(), role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UsersResponse{Users: users})
}

// GetUser retrieves a user by ID
// @Summary Get user details
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.UserResponse "User retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.userService.GetUser(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResponse{User: user})
}

// UpdateUser overwrites a user's profile
// @Summary Update user profile
// @Description Students may update only themselves; coordinators and admins may update anyone
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Param request body dto.UpdateUserRequest true "Profile"
// @Success 200 {object} models.User "Updated user"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID, validation failure or denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email or roll number already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	updated, err := c.userService.UpdateUser(ctx.Request.Context(), caller, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// VerifyUser sets the verification status of a user
// @Summary Verify or unverify a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Param request body dto.VerifyUserRequest true "Verification status"
// @Success 200 {object} dto.SuccessResponse "Verification status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID, invalid value, self-verification or denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/verify [patch]
func (c *UserController) VerifyUser(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.VerifyUserRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	msg, err := c.userService.SetVerification(ctx.Request.Context(), caller, ctx.Param("id"), req.IsVerified)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: msg})
}

// UpdateRole assigns a role to a user
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Param request body dto.UpdateRoleRequest true "Role"
// @Success 200 {object} dto.SuccessResponse "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID, invalid role, self-change or denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/role [patch]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	msg, err := c.userService.SetRole(ctx.Request.Context(), caller, ctx.Param("id"), req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: msg})
}

// AssignCompany places a student at a company
// @Summary Change a student's placement
// @Description companyId "np" marks the student as not placed
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Param request body dto.AssignCompanyRequest true "Company"
// @Success 200 {object} dto.SuccessResponse "Placement updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or denied"
// @Failure 404 {object} dto.ErrorResponse "User or company not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/company [patch]
func (c *UserController) AssignCompany(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.AssignCompanyRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	msg, err := c.userService.AssignCompany(ctx.Request.Context(), caller, ctx.Param("id"), req.CompanyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: msg})
}

// DeleteUser removes a user
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID, self-deletion or denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	msg, err := c.userService.DeleteUser(ctx.Request.Context(), caller, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: msg})
}
