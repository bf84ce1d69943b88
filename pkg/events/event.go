package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventId returns the unique identifier of this event instance.
	EventId() string

	// EventType returns the unique code for this event (e.g., "CHAT_EXCHANGE").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Id         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventId() string {
	return e.Id
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

// EventTypeChatExchange marks one completed fallback exchange.
const EventTypeChatExchange = "CHAT_EXCHANGE"

// NewChatExchange builds the event published after every fallback reply.
func NewChatExchange(sessionID, intent string) Event {
	return BaseEvent{
		Id:   uuid.NewString(),
		Type: EventTypeChatExchange,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"intent":     intent,
		},
		OccurredAt: time.Now(),
	}
}
