// Package events defines the dashboard's WebSocket event vocabulary and the
// fan-out helper. Every event is a flat JSON object with a "type" field the
// browser dispatches on, plus an ISO timestamp.
package events

import (
	"encoding/json"
	"time"
)

// Event type strings dispatched by the browser.
const (
	TypeInitialState                = "initial_state"
	TypeBusinessAdded               = "business_added"
	TypeBusinessUpdated             = "business_updated"
	TypeProcessStarted              = "process_started"
	TypeProcessFinished             = "process_finished"
	TypeLeadFindingCompleted        = "lead_finding_completed"
	TypeLeadFindingFailed           = "lead_finding_failed"
	TypeLeadFindingEmpty            = "lead_finding_empty"
	TypeStateReset                  = "state_reset"
	TypeSDREngaged                  = "sdr_engaged"
	TypeAgentStatus                 = "agent_status"
	TypeHumanInputRequest           = "human_input_request"
	TypeHumanInputResponseSubmitted = "human_input_response_submitted"
	TypeCalendarNotification        = "calendar_notification"
)

// Broadcaster is the hub's fan-out surface.
type Broadcaster interface {
	Broadcast(payload []byte) int
}

// Build assembles an event payload: the type, a fresh timestamp, and the
// given fields.
func Build(typ string, fields map[string]interface{}) []byte {
	event := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		event[k] = v
	}
	event["type"] = typ
	event["timestamp"] = time.Now().Format(time.RFC3339)

	payload, err := json.Marshal(event)
	if err != nil {
		// Fields are plain JSON-able values everywhere in this codebase;
		// an encode failure is a programming error worth surfacing loudly.
		panic("events: unencodable event: " + err.Error())
	}
	return payload
}

// Publish builds and broadcasts an event, returning the delivery count.
func Publish(b Broadcaster, typ string, fields map[string]interface{}) int {
	return b.Broadcast(Build(typ, fields))
}
