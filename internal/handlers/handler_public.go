package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/middleware"
)

// PublicHandler serves the published feeds. No authentication: filtering
// already happened at publish time.
type PublicHandler struct {
	feeds portssvc.FeedSvcFacade
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(feeds portssvc.FeedSvcFacade) *PublicHandler {
	return &PublicHandler{feeds: feeds}
}

// registerPublicRoutes sets up the public feed route.
func registerPublicRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewPublicHandler(services.Feed)
	r.GET("/pub/:externalPath", h.GetFeed)
}

// GetFeed godoc
// @Summary Read a published feed
// @Description Returns the most recently published entries at the path, or an empty array if none exist.
// @Tags public
// @Produce json
// @Param externalPath path string true "Public feed path"
// @Success 200 {array} domain.BookEntry
// @Router /pub/{externalPath} [get]
func (h *PublicHandler) GetFeed(c *gin.Context) {
	ctx := c.Request.Context()

	entries, err := h.feeds.GetFeed(ctx, c.Param("externalPath"))
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to read feed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read feed."})
		return
	}
	c.JSON(http.StatusOK, entries)
}
