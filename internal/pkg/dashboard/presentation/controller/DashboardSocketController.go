package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sernur/SalesShortcut/internal/infrastructure/realtime"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/events"
)

// DashboardSocketController handles GET /ws. The socket is server-to-client:
// the browser gets a full state snapshot on connect, then live events until it
// disconnects. Inbound frames are read only to service pings.
type DashboardSocketController struct {
	registry *state.Registry
	hub      *realtime.Hub
}

func NewDashboardSocketController(registry *state.Registry, hub *realtime.Hub) *DashboardSocketController {
	return &DashboardSocketController{registry: registry, hub: hub}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard is a trusted local demo surface without auth.
		return true
	},
}

const socketReadTimeout = 60 * time.Second

// Handle upgrades the connection and parks it on the hub until it dies.
func (ctl *DashboardSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.hub.Attach(conn)
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		snapshot := events.Build(events.TypeInitialState, map[string]interface{}{
			"businesses":   ctl.registry.Leads(),
			"current_city": ctl.registry.CurrentCity(),
			"is_running":   ctl.registry.Running(),
		})
		_ = conn.Send(snapshot)

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		})

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(socketReadTimeout))
		}
	}
}
