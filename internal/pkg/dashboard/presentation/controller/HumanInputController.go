package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/usecase"
)

// HumanInputController handles the human-in-the-loop endpoints. Agents file
// requests with POST /api/human-input; the browser lists them with GET and
// answers through POST /api/human-input/:requestId.
type HumanInputController struct {
	humanUC *usecase.HumanInputUseCase
}

func NewHumanInputController(humanUC *usecase.HumanInputUseCase) *HumanInputController {
	return &HumanInputController{humanUC: humanUC}
}

// HandleReceive files a new request from an agent.
func (ctl *HumanInputController) HandleReceive() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req state.HumanInputRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := ctl.humanUC.Receive(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "pending", "request_id": req.RequestID})
	}
}

// HandleList returns the requests still awaiting an answer.
func (ctl *HumanInputController) HandleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"requests": ctl.humanUC.Pending()})
	}
}

type humanInputResponseRequest struct {
	Response string `form:"response" json:"response" binding:"required"`
}

// HandleRespond forwards the operator's answer to the requesting agent.
func (ctl *HumanInputController) HandleRespond() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("requestId")

		var req humanInputResponseRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch err := ctl.humanUC.Submit(c.Request.Context(), requestID, req.Response); {
		case errors.Is(err, usecase.ErrAgent):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"status": "submitted", "request_id": requestID})
		}
	}
}
