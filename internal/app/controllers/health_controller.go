package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/models/dto"
)

// HealthController reports liveness
type HealthController struct {
	storeDriver string
}

// NewHealthController creates a new HealthController
func NewHealthController(storeDriver string) *HealthController {
	return &HealthController{storeDriver: storeDriver}
}

// Health reports liveness and the configured store
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{Status: "ok", Store: c.storeDriver}, ""))
}
