package a2a

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is what an Executor receives: the task identity plus the flattened
// data payload and metadata from the message parts.
type Request struct {
	TaskID    string
	ContextID string
	Data      map[string]interface{}
	Metadata  map[string]interface{}
}

// Operation reads the "operation" metadata key, when the caller set one.
func (r *Request) Operation() string {
	if r.Metadata == nil {
		return ""
	}
	op, _ := r.Metadata["operation"].(string)
	return op
}

// Result is what an Executor produces. A nil Result with a nil error is
// treated as a bare completed task with no artifacts.
type Result struct {
	State        string
	Message      string
	ArtifactName string
	Data         map[string]interface{}
}

// Executor runs one agent's task logic.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, req *Request) (*Result, error)

func (f ExecutorFunc) Execute(ctx context.Context, req *Request) (*Result, error) {
	return f(ctx, req)
}

// RegisterRoutes mounts the task endpoint and a health probe on the engine.
func RegisterRoutes(r *gin.Engine, service string, exec Executor, logger *zap.Logger) {
	r.POST("/tasks", Handler(exec, logger))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": service})
	})
}

// Handler decodes the send envelope, runs the executor, and encodes the
// task result or error object. Executor errors become a failed response, not
// an HTTP transport error, matching the SDK convention.
func Handler(exec Executor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var envelope SendRequest
		if err := c.ShouldBindJSON(&envelope); err != nil {
			c.JSON(http.StatusBadRequest, SendResponse{
				Err: &Error{Code: http.StatusBadRequest, Message: "invalid task envelope: " + err.Error()},
			})
			return
		}

		req := &Request{
			TaskID:    envelope.Message.TaskID,
			ContextID: envelope.Message.ContextID,
			Data:      envelope.Message.MergedData(),
			Metadata:  envelope.Message.Metadata,
		}
		if req.TaskID == "" {
			req.TaskID = uuid.NewString()
		}

		logger.Info("task received",
			zap.String("task_id", req.TaskID),
			zap.String("context_id", req.ContextID),
			zap.String("operation", req.Operation()),
		)

		result, err := exec.Execute(c.Request.Context(), req)
		if err != nil {
			logger.Error("task failed", zap.String("task_id", req.TaskID), zap.Error(err))
			c.JSON(http.StatusOK, SendResponse{
				ID: envelope.ID,
				Result: &Task{
					ID:        req.TaskID,
					ContextID: req.ContextID,
					Status:    TaskStatus{State: StateFailed, Message: err.Error()},
				},
			})
			return
		}

		task := &Task{ID: req.TaskID, ContextID: req.ContextID, Status: TaskStatus{State: StateCompleted}}
		if result != nil {
			if result.State != "" {
				task.Status.State = result.State
			}
			task.Status.Message = result.Message
			if result.ArtifactName != "" {
				task.Artifacts = []Artifact{{
					Name:  result.ArtifactName,
					Parts: []Part{NewDataPart(result.Data)},
				}}
			}
		}

		c.JSON(http.StatusOK, SendResponse{ID: envelope.ID, Result: task})
	}
}
