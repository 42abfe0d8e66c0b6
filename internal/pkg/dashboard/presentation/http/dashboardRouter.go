package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/infrastructure/realtime"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/usecase"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/presentation/controller"
)

// Deps bundles what the dashboard endpoints need: shared state, the socket
// hub, and a caller per downstream agent.
type Deps struct {
	Registry *state.Registry
	Hub      *realtime.Hub
	Logger   *zap.Logger

	Finder  usecase.AgentCaller
	SDR     usecase.AgentCaller
	Manager usecase.AgentCaller

	// SDRBaseURL receives forwarded human-input answers.
	SDRBaseURL string
}

// RegisterRoutes constructs the per-endpoint controllers and binds them.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	recordUC := usecase.NewRecordCallbackUseCase(deps.Registry, deps.Hub)
	startUC := usecase.NewStartLeadFindingUseCase(deps.Registry, deps.Hub, deps.Finder, deps.Logger)
	sendUC := usecase.NewSendToSDRUseCase(deps.Registry, deps.Hub, deps.SDR, deps.Logger)
	triggerUC := usecase.NewTriggerLeadManagerUseCase(deps.Registry, deps.Hub, deps.Manager, deps.Logger)
	humanUC := usecase.NewHumanInputUseCase(deps.Registry, deps.Hub, deps.SDRBaseURL, deps.Logger)

	pageCtl := controller.NewPageController()
	socketCtl := controller.NewDashboardSocketController(deps.Registry, deps.Hub)
	callbackCtl := controller.NewCallbackController(recordUC, deps.Logger)
	startCtl := controller.NewStartLeadFindingController(startUC)
	sendCtl := controller.NewSendToSDRController(sendUC)
	triggerCtl := controller.NewTriggerLeadManagerController(triggerUC)
	resetCtl := controller.NewResetController(deps.Registry, deps.Hub)
	humanCtl := controller.NewHumanInputController(humanUC)
	statusCtl := controller.NewStatusController(deps.Registry, deps.Hub)

	// GET / -> the dashboard page
	r.GET("/", pageCtl.Handle())

	// GET /ws -> websocket feed of dashboard events
	r.GET("/ws", socketCtl.Handle())

	// POST /agent_callback -> progress reports from the worker services
	r.POST("/agent_callback", callbackCtl.Handle())

	// Operator actions behind the dashboard buttons.
	r.POST("/start_lead_finding", startCtl.Handle())
	r.POST("/send_to_sdr", sendCtl.Handle())
	r.POST("/trigger_lead_manager", triggerCtl.Handle())
	r.POST("/reset", resetCtl.Handle())

	// JSON API for polling fallbacks and human-in-the-loop answers.
	r.GET("/api/businesses", statusCtl.HandleBusinesses())
	r.GET("/api/status", statusCtl.HandleStatus())
	r.GET("/api/human-input", humanCtl.HandleList())
	r.POST("/api/human-input", humanCtl.HandleReceive())
	r.POST("/api/human-input/:requestId", humanCtl.HandleRespond())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ui_client"})
	})
}
