package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/shelfpub/shelfpub_backend/internal/core/ports/services"
)

// SessionAuthMiddleware creates a Gin middleware handler that resolves the
// session cookie to a subject identifier. Requests without a valid, unexpired
// session are rejected with 401.
func SessionAuthMiddleware(sessions portssvc.SessionSvcFacade, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		handle, err := c.Cookie(cookieName)
		if err != nil || handle == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not signed in."})
			return
		}

		subjectID, err := sessions.Lookup(c.Request.Context(), handle)
		if err != nil {
			logger.Warn("Session lookup failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not signed in."})
			return
		}

		ctxWithSubject := context.WithValue(c.Request.Context(), subjectIDKey, subjectID)

		// Enrich the request logger with the resolved subject.
		enrichedLogger := logger.With(slog.String("subject_id", subjectID))
		ctxWithLoggerAndSubject := context.WithValue(ctxWithSubject, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndSubject)
		c.Next()
	}
}
