package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BuildInfo is reported by the version endpoint
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// Health handles GET /health. It reports liveness only and touches no collaborator.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Version returns a handler for GET /version
func Version(info BuildInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}
