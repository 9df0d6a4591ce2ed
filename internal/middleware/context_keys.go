package middleware

import "github.com/gin-gonic/gin"

// subjectIDKey is the key under which the authenticated subject identifier is
// stored in the request context.
const subjectIDKey = contextKey("subjectID")

// GetSubjectIDFromContext retrieves the authenticated subject identifier set
// by the session middleware. It returns the id and whether it was found.
func GetSubjectIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(subjectIDKey)
	if val == nil {
		return "", false
	}
	subjectID, ok := val.(string)
	return subjectID, ok
}
