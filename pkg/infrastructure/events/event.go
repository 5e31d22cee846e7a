// Package events records resolution traces. Each resolution run is one
// stream keyed by its run id, holding a started event, one event per
// candidate attempt and a finished event.
package events

import (
	"time"
)

// Event is one entry of a resolution stream
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

// EventHandler receives the events it can handle, in append order
type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventHandlerFunc adapts a function to EventHandler for the given types
type EventHandlerFunc struct {
	Types []string
	Fn    func(event Event) error
}

func (h *EventHandlerFunc) Handle(event Event) error {
	return h.Fn(event)
}

func (h *EventHandlerFunc) CanHandle(eventType string) bool {
	for _, t := range h.Types {
		if t == eventType {
			return true
		}
	}
	return false
}

// EventStore appends events to per-run streams and notifies subscribers
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
	Unsubscribe(handler EventHandler) error
}

// BaseEvent carries a resolution payload such as CandidateApplied
type BaseEvent struct {
	EventType    string
	Stream       string
	EventData    interface{}
	EventTime    time.Time
	EventVersion int
}

func (e BaseEvent) Type() string {
	return e.EventType
}

func (e BaseEvent) StreamID() string {
	return e.Stream
}

func (e BaseEvent) Data() interface{} {
	return e.EventData
}

func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

func (e BaseEvent) Version() int {
	return e.EventVersion
}

// NewEvent stamps data for streamID with the current time
func NewEvent(eventType, streamID string, data interface{}) Event {
	return BaseEvent{
		EventType:    eventType,
		Stream:       streamID,
		EventData:    data,
		EventTime:    time.Now(),
		EventVersion: 1,
	}
}
