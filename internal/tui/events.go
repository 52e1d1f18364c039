package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billie-coop/fr0st/internal/render"
	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/tui/components/status"
	"github.com/billie-coop/fr0st/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// listenForEvents listens for events from the event broker
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.eventSub
		if !ok {
			return nil
		}
		return event
	}
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	switch event.Type {
	case events.RenderStartedEvent:
		if p, ok := event.Payload.(events.RenderPayload); ok && reportsProgress(p.Kind) {
			m.preview.SetProgress(p.Kind.String(), 0, 0)
		}

	case events.RenderProgressEvent:
		if p, ok := event.Payload.(events.ProgressPayload); ok {
			m.preview.SetProgress(p.Kind.String(), p.Fraction, p.Remaining)
		}

	case events.RenderCompletedEvent:
		if p, ok := event.Payload.(events.RenderPayload); ok && reportsProgress(p.Kind) {
			m.preview.ClearProgress()
			return m.statusBar.ShowInfo(fmt.Sprintf("%s of %s done in %s",
				p.Kind, p.Flame, p.Duration.Round(time.Millisecond)))
		}

	case events.RenderFailedEvent:
		p, ok := event.Payload.(events.RenderPayload)
		if !ok {
			return nil
		}
		if reportsProgress(p.Kind) {
			m.preview.ClearProgress()
		}
		if errors.Is(p.Err, render.ErrAborted) || errors.Is(p.Err, context.Canceled) {
			if reportsProgress(p.Kind) {
				return m.statusBar.ShowWarning(p.Kind.String() + " stopped")
			}
			return nil
		}
		return m.statusBar.ShowError(fmt.Sprintf("%s of %s failed: %v", p.Kind, p.Flame, p.Err))

	case events.StatusMessageEvent, events.ErrorMessageEvent:
		if p, ok := event.Payload.(events.StatusMessagePayload); ok {
			return m.statusBar.SetMessage(p.Message, status.ParseType(p.Type))
		}
	}
	return nil
}

// reportsProgress is true for the kinds that run with a progress callback
func reportsProgress(kind scheduler.Kind) bool {
	return kind == scheduler.KindLargePreview || kind == scheduler.KindBackground
}
