package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sernur/SalesShortcut/internal/infrastructure/realtime"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
)

// StatusController handles the read-only JSON endpoints the dashboard page
// polls as a fallback when the socket is down.
type StatusController struct {
	registry *state.Registry
	hub      *realtime.Hub
}

func NewStatusController(registry *state.Registry, hub *realtime.Hub) *StatusController {
	return &StatusController{registry: registry, hub: hub}
}

// HandleBusinesses returns every tracked lead, oldest first.
func (ctl *StatusController) HandleBusinesses() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"businesses": ctl.registry.Leads()})
	}
}

// HandleStatus summarizes the run state.
func (ctl *StatusController) HandleStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"is_running":     ctl.registry.Running(),
			"current_city":   ctl.registry.CurrentCity(),
			"business_count": ctl.registry.Count(),
			"connections":    ctl.hub.Count(),
		})
	}
}
