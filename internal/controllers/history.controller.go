package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSeries returns the most recently rendered chart frame
func (mc *MonitorController) GetSeries(c *gin.Context) {
	frame := mc.Latest.Frame()
	c.JSON(http.StatusOK, gin.H{
		"capacity": mc.Settings.Get().Capacity,
		"length":   len(frame.Labels),
		"data":     frame,
	})
}

// GetStatus returns the loop state and the latest classified reading
func (mc *MonitorController) GetStatus(c *gin.Context) {
	resp := gin.H{
		"state":    mc.Loop.State().String(),
		"ticks":    mc.Loop.Ticks(),
		"settings": mc.Settings.Get(),
	}
	if report, ok := mc.Latest.Report(); ok {
		resp["current"] = report
	}
	c.JSON(http.StatusOK, resp)
}
