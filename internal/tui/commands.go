package tui

import (
	"image"
	"sync/atomic"

	"github.com/billie-coop/fr0st/internal/output"
	"github.com/billie-coop/fr0st/internal/render"
	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

const (
	rotateStep = 5.0 // degrees
	scaleStep  = 1.05
)

// requestThumbnails queues one thumbnail per flame
func (m *Model) requestThumbnails() {
	size := image.Pt(m.cfg.Thumbnail.Size, m.cfg.Thumbnail.Size)
	for i, f := range m.flames {
		m.sched.RequestThumbnail(func(img image.Image) {
			m.thumbs.SetImage(i, img)
		}, render.Target{
			Flame:   f,
			Size:    size,
			Quality: m.cfg.Thumbnail.Quality,
		})
	}
}

// requestPreview replaces any pending preview with one of the current flame
func (m *Model) requestPreview() {
	m.previewGen++
	gen := m.previewGen

	m.sched.RequestPreview(func(img image.Image) {
		if gen == m.previewGen {
			m.preview.SetImage(img)
		}
	}, render.Target{
		Flame:   m.flame(),
		Size:    image.Pt(m.cfg.Preview.Width, m.cfg.Preview.Height),
		Quality: m.cfg.Preview.Quality,
	})
}

// requestLargePreview renders the preview at full size. A newer preview
// aborts it.
func (m *Model) requestLargePreview() tea.Cmd {
	gen := m.previewGen
	cancel := new(atomic.Bool)
	m.cancelLarge = cancel

	_, err := m.sched.RequestLargePreview(func(img image.Image) {
		if gen == m.previewGen {
			m.preview.SetImage(img)
		}
	}, render.Target{
		Flame:   m.flame(),
		Size:    image.Pt(m.cfg.Render.Width, m.cfg.Render.Height),
		Quality: m.cfg.Preview.Quality,
		Threads: m.cfg.Render.Threads,
	}, m.progressFunc(scheduler.KindLargePreview, cancel))
	if err != nil {
		return m.statusBar.ShowError(err.Error())
	}
	return m.statusBar.ShowInfo("large preview queued")
}

// requestRender queues a full quality render that is written to the output
// directory when it arrives. It replaces a render still waiting to start.
func (m *Model) requestRender() tea.Cmd {
	cancel := new(atomic.Bool)
	m.cancelRender = cancel

	f := m.flame()
	name, dir := f.Name, m.cfg.OutputDir

	_, err := m.sched.RequestBackground(func(img image.Image) {
		m.pending = append(m.pending, saveRender(dir, name, img))
	}, render.Target{
		Flame:   f,
		Size:    image.Pt(m.cfg.Render.Width, m.cfg.Render.Height),
		Quality: m.cfg.Render.Quality,
		Threads: m.cfg.Render.Threads,
	}, m.progressFunc(scheduler.KindBackground, cancel))
	if err != nil {
		return m.statusBar.ShowError(err.Error())
	}
	return m.statusBar.ShowInfo("render of " + name + " queued")
}

// cancelRenders aborts the large preview and background render at their
// next progress poll
func (m *Model) cancelRenders() tea.Cmd {
	if m.cancelLarge == nil && m.cancelRender == nil {
		return nil
	}
	for _, c := range []*atomic.Bool{m.cancelLarge, m.cancelRender} {
		if c != nil {
			c.Store(true)
		}
	}
	m.cancelLarge, m.cancelRender = nil, nil
	return m.statusBar.ShowWarning("cancelling renders")
}

// progressFunc is called on a worker goroutine. It only publishes and reads
// the cancel flag.
func (m *Model) progressFunc(kind scheduler.Kind, cancel *atomic.Bool) render.ProgressFunc {
	broker := m.eventBroker
	return func(p render.Progress) render.Signal {
		broker.Publish(events.Event{
			Type: events.RenderProgressEvent,
			Payload: events.ProgressPayload{
				Kind:      kind,
				Fraction:  p.Fraction,
				Elapsed:   p.Elapsed,
				Remaining: p.Remaining,
			},
		})
		if cancel.Load() {
			return render.Abort
		}
		return render.Continue
	}
}

func saveRender(dir, name string, img image.Image) tea.Cmd {
	return func() tea.Msg {
		path, err := output.WritePNG(dir, name, img)
		return renderSavedMsg{flame: name, path: path, err: err}
	}
}
