package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves a built single page frontend. Unknown non-API paths
// fall back to index.html so client side routes survive a reload.
func (s *Server) mountStatic() {
	dir := s.opts.StaticDir
	if dir == "" {
		s.logger.Info("static directory not configured; API only mode")
		return
	}
	if !isDir(dir) {
		s.logger.Warn("static directory missing", "path", dir)
		return
	}

	index := filepath.Join(dir, "index.html")
	if !isFile(index) {
		s.logger.Warn("index.html not found", "path", index)
		return
	}

	if isDir(filepath.Join(dir, "static")) {
		// create-react-app output
		s.engine.Static("/static", filepath.Join(dir, "static"))
	}
	if isDir(filepath.Join(dir, "assets")) {
		s.engine.Static("/assets", filepath.Join(dir, "assets"))
	}
	for _, name := range []string{"favicon.ico", "manifest.json", "robots.txt"} {
		if p := filepath.Join(dir, name); isFile(p) {
			s.engine.StaticFile("/"+name, p)
		}
	}

	s.engine.GET("/", func(c *gin.Context) { c.File(index) })
	s.engine.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/swagger/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		c.File(index)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
