package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/sdr/presentation/controller"
)

// RegisterRoutes mounts the SDR's task endpoint and the human-input answer
// endpoint.
func RegisterRoutes(r *gin.Engine, exec a2a.Executor, inputs *state.PendingInputs, logger *zap.Logger) {
	a2a.RegisterRoutes(r, "sdr", exec, logger)

	humanCtl := controller.NewHumanInputController(inputs)

	// POST /api/human-input/:requestId -> operator answer forwarded by the dashboard
	r.POST("/api/human-input/:requestId", humanCtl.Handle())
}
