package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"falcon9/internal/prediction"
)

type HealthHandler struct {
	Service *prediction.Service
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

// @Summary Health check
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness check
// @Description Ready once a model artifact has been loaded.
// @Tags health
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	if !h.Service.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "model_missing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
