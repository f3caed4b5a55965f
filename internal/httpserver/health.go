package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"video-tutor/pkg/response"
)

// Version reported by the probe endpoints.
const Version = "1.0.0"

// healthCheck reports service identity and uptime.
// @Summary Health Check
// @Description Service identity, version, environment and uptime
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":      "healthy",
		"service":     "video-tutor",
		"version":     Version,
		"environment": srv.environment,
		"uptime":      time.Since(srv.startedAt).Round(time.Second).String(),
	})
}

// readyCheck reports whether the tutor domain is wired and able to take
// traffic. Load balancers should gate on this one, not /health.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "Tutor domain not wired"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if srv.tutorHandler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	response.OK(c, gin.H{"status": "ready"})
}

// liveCheck answers as long as the process is serving requests.
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{"status": "alive"})
}
