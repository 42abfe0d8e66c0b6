// Package controller holds one controller per dashboard endpoint, mirroring
// the HTTP surface the worker services and the browser talk to.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/callback"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/usecase"
	"github.com/sernur/SalesShortcut/internal/pkg/lead"
)

// CallbackController handles POST /agent_callback, the sink every worker
// service reports lead progress to.
type CallbackController struct {
	recordUC *usecase.RecordCallbackUseCase
	logger   *zap.Logger
}

func NewCallbackController(recordUC *usecase.RecordCallbackUseCase, logger *zap.Logger) *CallbackController {
	return &CallbackController{recordUC: recordUC, logger: logger}
}

// Handle validates and applies an agent callback. Unknown statuses and leads
// that cannot be materialized are the caller's fault and answer 400.
func (ctl *CallbackController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var update callback.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if update.BusinessID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "business_id is required"})
			return
		}

		if err := ctl.recordUC.Execute(update); err != nil {
			if errors.Is(err, lead.ErrUnknownStatus) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctl.logger.Warn("callback rejected",
				zap.String("business_id", update.BusinessID),
				zap.String("agent", string(update.AgentType)),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "received"})
	}
}
