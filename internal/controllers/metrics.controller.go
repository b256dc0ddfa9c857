package controllers

import (
	"errors"
	"net/http"

	"netwatch/internal/models"
	"netwatch/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoopInfo exposes the monitor loop's progress
type LoopInfo interface {
	State() services.LoopState
	Ticks() uint64
}

// MonitorController serves the HTTP control surface
type MonitorController struct {
	Settings *services.SettingsStore
	Latest   *services.LatestCache
	Loop     LoopInfo
	Log      *zap.SugaredLogger
}

type settingsRequest struct {
	IntervalSeconds *float64 `json:"interval_seconds"`
	Capacity        *int     `json:"capacity"`
}

func settingsBounds() gin.H {
	return gin.H{
		"interval_seconds": gin.H{
			"min":  models.MinIntervalSeconds,
			"max":  models.MaxIntervalSeconds,
			"step": models.IntervalStep,
		},
		"capacity": gin.H{
			"min":  models.MinCapacity,
			"max":  models.MaxCapacity,
			"step": models.CapacityStep,
		},
	}
}

// GetConfig returns the current settings and their accepted ranges
func (mc *MonitorController) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings": mc.Settings.Get(),
		"bounds":   settingsBounds(),
	})
}

// UpdateConfig changes interval and/or capacity. The change is picked up
// by the monitor at the start of its next sampling phase.
func (mc *MonitorController) UpdateConfig(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.IntervalSeconds == nil && req.Capacity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings provided"})
		return
	}

	current, err := mc.Settings.Patch(req.IntervalSeconds, req.Capacity)
	if err != nil {
		var rangeErr *services.RangeError
		if errors.As(err, &rangeErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    err.Error(),
				"settings": current,
				"bounds":   settingsBounds(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mc.Log.Infow("[HTTP] settings updated", "settings", current, "ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"settings": current,
		"bounds":   settingsBounds(),
	})
}
