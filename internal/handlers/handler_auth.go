package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/shelfpub/shelfpub_backend/internal/core/domain"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
	"github.com/shelfpub/shelfpub_backend/internal/dto"
	"github.com/shelfpub/shelfpub_backend/internal/middleware"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
)

// AuthHandler handles sign-in, Sheets authorization and token requests.
type AuthHandler struct {
	googleAuth   portssvc.GoogleAuthSvcFacade
	sessions     portssvc.SessionSvcFacade
	tokens       portssvc.TokenSvcFacade
	cookieName   string
	cookieMaxAge int
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		googleAuth:   services.GoogleAuth,
		sessions:     services.Session,
		tokens:       services.Token,
		cookieName:   cfg.SessionCookieName,
		cookieMaxAge: int(cfg.SessionTTL.Seconds()),
		secureCookie: cfg.IsProduction,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)

	// Sign-in attempts are limited to 5 per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	sessionAuth := middleware.SessionAuthMiddleware(services.Session, cfg.SessionCookieName)

	r.POST("/login", middleware.RequireXMLHttpRequest(), limitMiddleware, h.Login)
	r.POST("/auth", middleware.RequireXMLHttpRequest(), sessionAuth, h.Authorize)
	r.GET("/token", middleware.RequireXMLHttpRequest(), sessionAuth, h.Token)
	r.GET("/logout", sessionAuth, h.Logout)
}

// authParams assembles the common response body of the authenticated routes:
// the stored access token and both publishing parameters for a subject.
func authParams(ctx context.Context, tokens portssvc.TokenSvcFacade, subjectID string) (dto.AuthParamsResponse, error) {
	token, err := tokens.GetToken(ctx, subjectID, domain.TokenAccess)
	if err != nil {
		return dto.AuthParamsResponse{}, err
	}
	sheetID, err := tokens.GetParam(ctx, subjectID, domain.ParamSheetID)
	if err != nil {
		return dto.AuthParamsResponse{}, err
	}
	externalPath, err := tokens.GetParam(ctx, subjectID, domain.ParamExternalPath)
	if err != nil {
		return dto.AuthParamsResponse{}, err
	}
	return dto.AuthParamsResponse{
		Token:        token,
		SheetID:      sheetID,
		ExternalPath: externalPath,
	}, nil
}

// Login godoc
// @Summary Sign in with a Google identity assertion
// @Description Verifies the signed credential, opens a session and returns the stored token and publishing parameters.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Identity assertion"
// @Success 200 {object} dto.AuthParamsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Credential required as JSON."})
		return
	}

	payload, err := h.googleAuth.VerifyIDToken(ctx, req.Credential)
	if err != nil {
		logger.Warn("Identity assertion rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed."})
		return
	}

	handle, err := h.sessions.Create(ctx, payload.Subject)
	if err != nil {
		logger.Error("Failed to create session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create session."})
		return
	}
	h.setSessionCookie(c, handle, h.cookieMaxAge)

	params, err := authParams(ctx, h.tokens, payload.Subject)
	if err != nil {
		logger.Error("Failed to load user params", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load user parameters."})
		return
	}
	c.JSON(http.StatusOK, params)
}

// Authorize godoc
// @Summary Exchange an OAuth authorization code for Sheets access
// @Description Stores the resulting access/refresh token pair for the signed-in user.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param code formData string true "Authorization code"
// @Success 200 {object} dto.AuthParamsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth [post]
func (h *AuthHandler) Authorize(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	subjectID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Cannot authorize without authentication."})
		return
	}

	code := c.PostForm("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required."})
		return
	}

	token, err := h.googleAuth.ExchangeCode(ctx, code)
	if err != nil {
		logger.Warn("Authorization code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code."})
		return
	}

	if err := h.tokens.StoreTokens(ctx, subjectID, token.AccessToken, token.RefreshToken); err != nil {
		logger.Error("Failed to store tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to store tokens."})
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

// Token godoc
// @Summary Get the stored access token and publishing parameters
// @Description With ?refresh=1, first exchanges the stored refresh token for a new access token.
// @Tags auth
// @Produce json
// @Param refresh query string false "Set to refresh the access token first"
// @Success 200 {object} dto.AuthParamsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /token [get]
func (h *AuthHandler) Token(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	subjectID, ok := middleware.GetSubjectIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not signed in."})
		return
	}

	if c.Query("refresh") != "" {
		if err := h.tokens.Refresh(ctx, subjectID); err != nil {
			logger.Warn("Token refresh failed", slog.String("error", err.Error()))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Token refresh failed."})
			return
		}
	}

	params, err := authParams(ctx, h.tokens, subjectID)
	if err != nil {
		logger.Error("Failed to load user params", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load user parameters."})
		return
	}
	if params.Token == "" {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "No token available."})
		return
	}
	c.JSON(http.StatusOK, params)
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} ErrorResponse
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if handle, err := c.Cookie(h.cookieName); err == nil && handle != "" {
		if err := h.sessions.Destroy(ctx, handle); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to destroy session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log out."})
			return
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, handle string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, handle, maxAge, "/", "", h.secureCookie, true)
}
