package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/middleware"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// AnnouncementController serves the post collection
type AnnouncementController struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

// ListAnnouncements lists announcements newest first
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Param important query bool false "Only important announcements"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse{items=[]models.Announcement}}
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /announcements [get]
func (c *AnnouncementController) ListAnnouncements(ctx *gin.Context) {
	var query dto.AnnouncementFilterQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	posts, err := c.announcementService.ListAnnouncements(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	filtered := filters.Announcements(posts, query.ImportantOnly)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ListResponse{Items: filtered, Count: len(filtered), Total: len(posts)}, ""))
}

// GetAnnouncement returns one announcement
// @Summary Get announcement
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} dto.APIResponse{data=models.Announcement}
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id} [get]
func (c *AnnouncementController) GetAnnouncement(ctx *gin.Context) {
	post, err := c.announcementService.GetAnnouncement(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post, ""))
}

// CreateAnnouncement publishes an announcement
// @Summary Create announcement
// @Description postDate defaults to now when omitted
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body dto.AnnouncementRequest true "Announcement fields"
// @Success 201 {object} dto.APIResponse{data=models.Announcement}
// @Failure 400 {object} dto.ErrorResponse "Title or content is blank"
// @Router /announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	c.save(ctx, "")
}

// UpdateAnnouncement edits an announcement
// @Summary Update announcement
// @Description postDate is kept from creation
// @Tags announcements
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param request body dto.AnnouncementRequest true "Announcement fields"
// @Success 200 {object} dto.APIResponse{data=models.Announcement}
// @Failure 400 {object} dto.ErrorResponse "Title or content is blank"
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id} [put]
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	c.save(ctx, ctx.Param("id"))
}

func (c *AnnouncementController) save(ctx *gin.Context, id string) {
	var req dto.AnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	draft := &models.AnnouncementDraft{
		ID:          id,
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Author:      req.Author,
		IsImportant: req.IsImportant,
		PostDate:    req.PostDate,
	}
	savedID, err := c.announcementService.SaveAnnouncement(ctx.Request.Context(), draft)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.announcementService.GetAnnouncement(ctx.Request.Context(), savedID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if id == "" {
		ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post, "Announcement created"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post, "Announcement updated"))
}

// DeleteAnnouncement deletes an announcement
// @Summary Delete announcement
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Confirmation missing"
// @Failure 404 {object} dto.ErrorResponse
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	if !confirmed(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrConfirmationRequired)
		return
	}
	if err := c.announcementService.DeleteAnnouncement(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Announcement deleted"))
}
