package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/usecase"
)

// SendToSDRController handles POST /send_to_sdr, the operator's "work this
// lead" button.
type SendToSDRController struct {
	sendUC *usecase.SendToSDRUseCase
}

func NewSendToSDRController(sendUC *usecase.SendToSDRUseCase) *SendToSDRController {
	return &SendToSDRController{sendUC: sendUC}
}

type sendToSDRRequest struct {
	BusinessID string `form:"business_id" json:"business_id" binding:"required"`
}

func (ctl *SendToSDRController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendToSDRRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch err := ctl.sendUC.Execute(c.Request.Context(), req.BusinessID); {
		case errors.Is(err, usecase.ErrAgent):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusAccepted, gin.H{"status": "engaged", "business_id": req.BusinessID})
		}
	}
}
