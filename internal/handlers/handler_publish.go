package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/middleware"
)

// PublishHandler exposes the batch publish trigger.
type PublishHandler struct {
	publish portssvc.PublishSvcFacade
}

// NewPublishHandler creates a new PublishHandler.
func NewPublishHandler(publish portssvc.PublishSvcFacade) *PublishHandler {
	return &PublishHandler{publish: publish}
}

// registerPublishRoutes sets up the /update route. It carries no session
// auth: it is hit by the deployment's periodic trigger, not by browsers.
func registerPublishRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewPublishHandler(services.Publish)
	r.GET("/update", h.Update)
}

// Update godoc
// @Summary Publish the feeds of all publishable users
// @Description Per-user failures are logged and skipped; the batch itself still succeeds.
// @Tags publish
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} ErrorResponse
// @Router /update [get]
func (h *PublishHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.publish.PublishAll(ctx); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Publish batch failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Publish batch failed."})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
