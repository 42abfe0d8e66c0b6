// Package a2a implements the Agent-to-Agent JSON convention the services use
// to hand tasks to each other: a POST /tasks envelope carrying data parts, a
// task result carrying named artifacts, or a flat error object.
package a2a

import "encoding/json"

// Task lifecycle states.
const (
	StateSubmitted = "submitted"
	StateWorking   = "working"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

// DataPart is the only part kind the services exchange: a free-form JSON
// object.
type DataPart struct {
	Kind string                 `json:"kind,omitempty"`
	Data map[string]interface{} `json:"data"`
}

// Part wraps a DataPart under a "root" key, mirroring the SDK wire shape.
type Part struct {
	Root DataPart `json:"root"`
}

// NewDataPart builds a data part from a payload object.
func NewDataPart(data map[string]interface{}) Part {
	return Part{Root: DataPart{Kind: "data", Data: data}}
}

// Message is the request payload inside a task envelope.
type Message struct {
	TaskID    string                 `json:"taskId,omitempty"`
	ContextID string                 `json:"contextId,omitempty"`
	MessageID string                 `json:"messageId,omitempty"`
	Role      string                 `json:"role,omitempty"`
	Parts     []Part                 `json:"parts"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// MergedData flattens all data parts into one object. Later parts win on key
// conflicts; the services never rely on conflicting keys.
func (m *Message) MergedData() map[string]interface{} {
	out := make(map[string]interface{})
	for _, p := range m.Parts {
		for k, v := range p.Root.Data {
			out[k] = v
		}
	}
	return out
}

// SendRequest is the body of POST /tasks.
type SendRequest struct {
	ID      string  `json:"id"`
	Message Message `json:"message"`
}

// TaskStatus carries the lifecycle state and an optional progress message.
type TaskStatus struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// Artifact is a named result attached to a completed task.
type Artifact struct {
	Name  string `json:"name"`
	Parts []Part `json:"parts"`
}

// Task is the result object of a successful send.
type Task struct {
	ID        string     `json:"id"`
	ContextID string     `json:"contextId,omitempty"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// ArtifactData returns the first data part of the named artifact, or nil when
// the artifact is absent or empty.
func (t *Task) ArtifactData(name string) map[string]interface{} {
	for _, a := range t.Artifacts {
		if a.Name == name && len(a.Parts) > 0 {
			return a.Parts[0].Root.Data
		}
	}
	return nil
}

// Error mirrors the SDK's error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SendResponse is the body returned by POST /tasks: exactly one of Result or
// Err is set.
type SendResponse struct {
	ID     string `json:"id"`
	Result *Task  `json:"result,omitempty"`
	Err    *Error `json:"error,omitempty"`
}

// String renders a data payload for log lines; best-effort.
func (p DataPart) String() string {
	b, err := json.Marshal(p.Data)
	if err != nil {
		return "<unencodable>"
	}
	return string(b)
}
