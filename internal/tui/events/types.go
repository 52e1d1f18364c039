package events

import (
	"time"

	"github.com/billie-coop/fr0st/internal/scheduler"
)

// EventType identifies the type of event
type EventType string

const (
	// Render events
	RenderStartedEvent   EventType = "render.started"
	RenderProgressEvent  EventType = "render.progress"
	RenderCompletedEvent EventType = "render.completed"
	RenderFailedEvent    EventType = "render.failed"

	// UI events
	StatusMessageEvent EventType = "ui.status"
	ErrorMessageEvent  EventType = "ui.error"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// Event payload types

type RenderPayload struct {
	JobID    string
	Kind     scheduler.Kind
	Flame    string
	Duration time.Duration
	Err      error
}

type ProgressPayload struct {
	Kind      scheduler.Kind
	Fraction  float64
	Elapsed   time.Duration
	Remaining time.Duration
}

type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}
