// Package controller holds the SDR's plain HTTP endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sernur/SalesShortcut/internal/pkg/sdr/application/state"
)

// HumanInputController handles POST /api/human-input/:requestId, the
// dashboard's delivery of an operator answer to a waiting engagement.
type HumanInputController struct {
	inputs *state.PendingInputs
}

func NewHumanInputController(inputs *state.PendingInputs) *HumanInputController {
	return &HumanInputController{inputs: inputs}
}

type humanInputAnswer struct {
	URL string `json:"url" binding:"required"`
}

func (ctl *HumanInputController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("requestId")

		var answer humanInputAnswer
		if err := c.ShouldBindJSON(&answer); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !ctl.inputs.Resolve(requestID, answer.URL) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no engagement waiting for this request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "delivered", "request_id": requestID})
	}
}
