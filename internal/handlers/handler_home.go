package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/shelfpub/shelfpub_backend/internal/platform/config"
)

// registerStaticRoutes serves the built frontend. The index is also served at
// /p/<externalPath> so public feed pages deep-link into the SPA.
func registerStaticRoutes(r *gin.Engine, cfg *config.Config) {
	index := filepath.Join(cfg.StaticDir, "index.html")

	serveIndex := func(c *gin.Context) {
		c.File(index)
	}
	r.GET("/", serveIndex)
	r.GET("/p/:externalPath", serveIndex)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		// Clean before joining so the asset path cannot escape the dist dir.
		asset := filepath.Join(cfg.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(asset); err != nil || info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(asset)
	})
}
