package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/usecase"
)

// StartLeadFindingController handles POST /start_lead_finding from the
// dashboard form.
type StartLeadFindingController struct {
	startUC *usecase.StartLeadFindingUseCase
}

func NewStartLeadFindingController(startUC *usecase.StartLeadFindingUseCase) *StartLeadFindingController {
	return &StartLeadFindingController{startUC: startUC}
}

type startLeadFindingRequest struct {
	City string `form:"city" json:"city"`
}

// Handle accepts the city from either a form post or a JSON body.
func (ctl *StartLeadFindingController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startLeadFindingRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch err := ctl.startUC.Execute(req.City); {
		case errors.Is(err, usecase.ErrInvalidCity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, state.ErrRunInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusAccepted, gin.H{"status": "started", "city": req.City})
		}
	}
}
