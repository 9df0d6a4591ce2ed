package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/dto"
	"github.com/shelfpub/shelfpub_backend/internal/middleware"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
)

// ParamsHandler handles updates to the user's publishing parameters.
type ParamsHandler struct {
	tokens portssvc.TokenSvcFacade
}

// NewParamsHandler creates a new ParamsHandler.
func NewParamsHandler(tokens portssvc.TokenSvcFacade) *ParamsHandler {
	return &ParamsHandler{tokens: tokens}
}

// registerParamRoutes sets up the /set/<param> route.
func registerParamRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewParamsHandler(services.Token)
	sessionAuth := middleware.SessionAuthMiddleware(services.Session, cfg.SessionCookieName)
	r.POST("/set/:param", middleware.RequireXMLHttpRequest(), sessionAuth, h.SetParam)
}

// SetParam godoc
// @Summary Set a publishing parameter
// @Description Stores the linked sheet id or the public feed path for the signed-in user.
// @Tags params
// @Accept json
// @Produce json
// @Param param path string true "Parameter name" Enums(sheet_id, external_path)
// @Param value body dto.SetParamRequest true "Parameter value"
// @Success 200 {object} dto.AuthParamsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /set/{param} [post]
func (h *ParamsHandler) SetParam(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	subjectID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not signed in."})
		return
	}

	param := c.Param("param")
	if param != domain.ParamSheetID && param != domain.ParamExternalPath {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid param."})
		return
	}

	var req dto.SetParamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No value provided."})
		return
	}

	if err := h.tokens.StoreParam(ctx, subjectID, param, req.Value); err != nil {
		logger.Error("Failed to store param", slog.String("param", param), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store param."})
		return
	}

	params, err := authParams(ctx, h.tokens, subjectID)
	if err != nil {
		logger.Error("Failed to load user params", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load user parameters."})
		return
	}
	c.JSON(http.StatusOK, params)
}
