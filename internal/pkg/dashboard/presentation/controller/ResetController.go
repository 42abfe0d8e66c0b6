package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sernur/SalesShortcut/internal/infrastructure/realtime"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/events"
)

// ResetController handles POST /reset, discarding all dashboard state.
type ResetController struct {
	registry *state.Registry
	hub      *realtime.Hub
}

func NewResetController(registry *state.Registry, hub *realtime.Hub) *ResetController {
	return &ResetController{registry: registry, hub: hub}
}

func (ctl *ResetController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctl.registry.Reset()
		events.Publish(ctl.hub, events.TypeStateReset, nil)
		c.JSON(http.StatusOK, gin.H{"status": "reset"})
	}
}
