package tui

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/billie-coop/fr0st/internal/config"
	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/tui/components/help"
	"github.com/billie-coop/fr0st/internal/tui/components/info"
	"github.com/billie-coop/fr0st/internal/tui/components/preview"
	"github.com/billie-coop/fr0st/internal/tui/components/status"
	"github.com/billie-coop/fr0st/internal/tui/components/thumbs"
	"github.com/billie-coop/fr0st/internal/tui/events"
	"github.com/billie-coop/fr0st/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

const statusRefresh = 250 * time.Millisecond

// Options wires the model to a running scheduler
type Options struct {
	Config    *config.Config
	Flames    []*flame.Flame
	Scheduler *scheduler.Scheduler
	Router    *delivery.Router
	Broker    *events.Broker

	// InitialFlame selects a flame by name at startup, if present
	InitialFlame string
}

// Model is the flame browser. All of its state is owned by the bubbletea
// goroutine: delivery callbacks run there through Dispatch, and worker
// goroutines only reach it through the router and the broker.
type Model struct {
	width  int
	height int

	cfg    *config.Config
	sched  *scheduler.Scheduler
	router *delivery.Router
	keys   KeyMap

	// Components
	preview   *preview.Model
	thumbs    *thumbs.Model
	info      *info.Model
	help      *help.Model
	statusBar *status.Component
	showHelp  bool

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	flames  []*flame.Flame
	current int
	xform   int
	initial string

	// previewGen tags preview requests so a late delivery for a flame the
	// user already left is dropped
	previewGen int

	// commands produced by delivery callbacks, returned after Dispatch
	pending []tea.Cmd

	cancelLarge  *atomic.Bool
	cancelRender *atomic.Bool
}

// New creates the model. Flames must not be empty.
func New(opts Options) *Model {
	keys := DefaultKeyMap()

	m := &Model{
		cfg:         opts.Config,
		sched:       opts.Scheduler,
		router:      opts.Router,
		keys:        keys,
		preview:     preview.New(),
		thumbs:      thumbs.New(thumbCellCols),
		info:        info.New(),
		help:        help.New(keys.Bindings()),
		statusBar:   status.New(),
		eventBroker: opts.Broker,
		flames:      opts.Flames,
		initial:     opts.InitialFlame,
	}

	m.thumbs.SetItems(m.flameNames())

	m.eventSub = m.eventBroker.Subscribe()
	return m
}

// Init requests the first thumbnails and preview and starts the listeners
func (m *Model) Init() tea.Cmd {
	m.requestThumbnails()
	m.selectFlame(m.indexOf(m.initial))

	return tea.Batch(
		m.preview.Init(),
		m.router.Listen(),
		m.listenForEvents(),
		statusTick(),
		m.statusBar.ShowInfo(fmt.Sprintf("%d flames loaded, ? for help", len(m.flames))),
	)
}

func statusTick() tea.Cmd {
	return tea.Tick(statusRefresh, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.resizeComponents()

	case delivery.ImageReadyMsg:
		if err := msg.Delivery.Dispatch(); err != nil {
			logging.Logger().Warn("tui: delivery dropped", "error", err)
		}
		cmds = append(cmds, m.takePending()...)
		cmds = append(cmds, m.router.Listen())
		return m, tea.Batch(cmds...)

	case delivery.RouterClosedMsg:
		return m, nil

	case events.Event:
		return m, tea.Batch(m.handleEvent(msg), m.listenForEvents())

	case statusTickMsg:
		st := m.sched.Status()
		m.info.SetStatus(st)
		m.preview.SetBusy(st.Fast.Busy)
		return m, statusTick()

	case renderSavedMsg:
		if msg.err != nil {
			logging.Logger().Error("tui: saving render failed", "flame", msg.flame, "error", msg.err)
			return m, m.statusBar.ShowError("save failed: " + msg.err.Error())
		}
		return m, m.statusBar.ShowSuccess("saved " + msg.path)

	case FlamesLoadedMsg:
		return m, m.reloadFlames(msg)

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	// Spinner ticks, status timeouts, help scrolling
	_, cmd := m.preview.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = m.statusBar.Update(msg)
	cmds = append(cmds, cmd)
	if m.showHelp {
		_, cmd = m.help.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil

	case m.showHelp:
		if key.Matches(msg, m.keys.Close) {
			m.showHelp = false
			return nil
		}
		_, cmd := m.help.Update(msg)
		return cmd

	case key.Matches(msg, m.keys.PrevFlame):
		m.selectFlame(m.current - 1)
	case key.Matches(msg, m.keys.NextFlame):
		m.selectFlame(m.current + 1)

	case key.Matches(msg, m.keys.NextXform):
		if n := len(m.flame().Xforms); n > 0 {
			m.xform = (m.xform + 1) % n
			m.info.SetFlame(m.flame(), m.xform)
		}

	case key.Matches(msg, m.keys.RotateLeft):
		m.editXform(func(x *flame.Xform) { x.RotateBy(rotateStep) })
	case key.Matches(msg, m.keys.RotateRight):
		m.editXform(func(x *flame.Xform) { x.RotateBy(-rotateStep) })
	case key.Matches(msg, m.keys.Grow):
		m.editXform(func(x *flame.Xform) { x.ScaleBy(scaleStep) })
	case key.Matches(msg, m.keys.Shrink):
		m.editXform(func(x *flame.Xform) { x.ScaleBy(1 / scaleStep) })

	case key.Matches(msg, m.keys.LargePreview):
		return m.requestLargePreview()
	case key.Matches(msg, m.keys.Render):
		return m.requestRender()
	case key.Matches(msg, m.keys.Thumbnails):
		m.requestThumbnails()
		return m.statusBar.ShowInfo("thumbnails queued")
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelRenders()

	case key.Matches(msg, m.keys.Theme):
		theme := styles.DefaultManager().Cycle()
		m.help.Refresh()
		m.preview.SetImage(m.preview.Image())
		return m.statusBar.ShowInfo("theme " + theme.Name)
	}
	return nil
}

// reloadFlames swaps in a re-read flame file, keeping the selection when
// it still exists. Edits made in the UI are replaced by the file.
func (m *Model) reloadFlames(msg FlamesLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		logging.Logger().Warn("tui: flame reload failed", "error", msg.Err)
		return m.statusBar.ShowError("reload failed: " + msg.Err.Error())
	}
	if len(msg.Flames) == 0 {
		return m.statusBar.ShowWarning("reloaded file has no flames")
	}

	m.flames = msg.Flames
	m.thumbs.SetItems(m.flameNames())
	m.requestThumbnails()
	m.selectFlame(min(m.current, len(m.flames)-1))
	return m.statusBar.ShowInfo(fmt.Sprintf("reloaded %d flames", len(m.flames)))
}

// indexOf returns the position of the named flame, or 0
func (m *Model) indexOf(name string) int {
	for i, f := range m.flames {
		if f.Name == name {
			return i
		}
	}
	return 0
}

// Selection reports the selected flame and theme, for saving the session
func (m *Model) Selection() (flameName, theme string) {
	return m.flame().Name, styles.CurrentTheme().Name
}

func (m *Model) flameNames() []string {
	names := make([]string, len(m.flames))
	for i, f := range m.flames {
		names[i] = f.Name
	}
	return names
}

// flame returns the flame being edited
func (m *Model) flame() *flame.Flame {
	return m.flames[m.current]
}

// selectFlame switches flames, wrapping at both ends
func (m *Model) selectFlame(i int) {
	n := len(m.flames)
	m.current = ((i % n) + n) % n
	m.xform = 0

	m.thumbs.Select(m.current)
	m.info.SetFlame(m.flame(), m.xform)
	m.preview.SetTitle(m.flame().Name)
	m.requestPreview()
}

// editXform changes the selected xform in place and re-previews. Queued
// jobs hold their own copy of the flame.
func (m *Model) editXform(edit func(*flame.Xform)) {
	f := m.flame()
	if m.xform >= len(f.Xforms) {
		return
	}
	edit(&f.Xforms[m.xform])
	m.info.SetFlame(f, m.xform)
	m.requestPreview()
}

func (m *Model) takePending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("Initializing...")
	}

	s := styles.CurrentTheme().S()

	previewView := s.BorderFocused.Render(m.preview.View())
	mainContent := lipgloss.JoinVertical(lipgloss.Left, previewView, m.thumbs.View())
	infoView := s.Border.Render(m.info.View())
	topSection := lipgloss.JoinHorizontal(lipgloss.Top, mainContent, infoView)

	m.statusBar.SetLeftContent(m.statusLine())
	baseView := lipgloss.JoinVertical(lipgloss.Left, topSection, m.statusBar.View())

	if m.showHelp {
		helpView := s.BorderFocused.Render(m.help.View())
		return tea.NewView(lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpView))
	}
	return tea.NewView(baseView)
}

func (m *Model) statusLine() string {
	f := m.flame()
	return fmt.Sprintf("%s %d/%d  xform %d/%d  %s",
		f.Name, m.current+1, len(m.flames), m.xform+1, len(f.Xforms), m.cfg.DefaultBackend)
}
