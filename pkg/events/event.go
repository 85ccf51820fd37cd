package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "EXPLANATION_READY").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher pushes events onto the internal bus. The session manager only
// depends on this contract; the wiring lives in the bootstrap layer.
type Publisher interface {
	Publish(event Event) error
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeExplanationReady = "EXPLANATION_READY"
	TypeReplyAppended    = "REPLY_APPENDED"
	TypeStateReset       = "STATE_RESET"
)

// NewExplanationReady fires when an async use-case explanation lands and
// the conversation transitions to ready.
func NewExplanationReady(useCaseKey, explanation string) Event {
	return BaseEvent{
		Type: TypeExplanationReady,
		Data: map[string]interface{}{
			"use_case_key": useCaseKey,
			"explanation":  explanation,
		},
		OccurredAt: time.Now(),
	}
}

// NewReplyAppended fires when a chat turn receives its assistant reply.
func NewReplyAppended(useCaseKey string) Event {
	return BaseEvent{
		Type: TypeReplyAppended,
		Data: map[string]interface{}{
			"use_case_key": useCaseKey,
		},
		OccurredAt: time.Now(),
	}
}

// NewStateReset fires when the active document and its sessions are
// cleared or replaced.
func NewStateReset() Event {
	return BaseEvent{
		Type:       TypeStateReset,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}
}
