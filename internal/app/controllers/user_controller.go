package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/middleware"
)

// UserController serves student records
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers lists students
// @Summary List students
// @Description Returns every user whose user_type is Student, narrowed by the optional filters
// @Tags users
// @Produce json
// @Param q query string false "Case-insensitive search over name, email, ids and access"
// @Param admitted query string false "all, admitted or notAdmitted" Enums(all, admitted, notAdmitted)
// @Param batch query string false "Batch text matched inside user_access"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse{items=[]models.User}}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var query dto.UserFilterQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	users, err := c.userService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filtered := filters.Users(users, filters.UserFilter{
		Search:   query.Search,
		Admitted: filters.ParseAdmission(query.Admitted),
		Batch:    query.Batch,
	})
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse{
		Items: filtered,
		Count: len(filtered),
		Total: len(users),
	}, ""))
}

// GetUser returns one student
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.userService.GetUser(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}

// UpdateUser writes the editable access fields of a student
// @Summary Update user access
// @Description Writes user_access, sessionId, end_subs and isAdmitted and records who changed them
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Editable fields"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	var updatedBy string
	if s, ok := middleware.CurrentSession(ctx); ok {
		updatedBy = s.Identity.Name
	}

	draft := &models.UserDraft{
		ID:         ctx.Param("id"),
		UserAccess: req.UserAccess,
		SessionID:  req.SessionID,
		EndSubs:    req.EndSubs,
		IsAdmitted: req.IsAdmitted,
	}
	if err := c.userService.UpdateUser(ctx.Request.Context(), draft, updatedBy); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), draft.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "User updated"))
}
