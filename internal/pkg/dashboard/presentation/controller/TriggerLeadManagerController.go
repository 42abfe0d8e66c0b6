package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/usecase"
)

// TriggerLeadManagerController handles POST /trigger_lead_manager, the manual
// "check the inbox now" button. The Gmail watcher triggers the same sweep
// automatically when new mail arrives.
type TriggerLeadManagerController struct {
	triggerUC *usecase.TriggerLeadManagerUseCase
}

func NewTriggerLeadManagerController(triggerUC *usecase.TriggerLeadManagerUseCase) *TriggerLeadManagerController {
	return &TriggerLeadManagerController{triggerUC: triggerUC}
}

func (ctl *TriggerLeadManagerController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ctl.triggerUC.Execute(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "completed"})
	}
}
