package status

import (
	"strings"
	"time"

	"github.com/billie-coop/fr0st/internal/tui/components/core"
	"github.com/billie-coop/fr0st/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// MessageType selects the icon and colour of a status message
type MessageType int

const (
	Info MessageType = iota
	Warning
	Error
	Success
)

// DefaultTTL is how long a message stays up
const DefaultTTL = 5 * time.Second

// ParseType maps the broker's payload strings onto message types
func ParseType(s string) MessageType {
	switch s {
	case "warning":
		return Warning
	case "error":
		return Error
	case "success":
		return Success
	}
	return Info
}

// StatusMessage is the text currently shown on the right of the bar
type StatusMessage struct {
	Content string
	Type    MessageType
	Shown   time.Time

	seq uint64
}

// expireMsg clears the message with the matching sequence number
type expireMsg struct{ seq uint64 }

// Component is the one-line bar at the bottom of the screen. The left side
// carries scheduler activity, the right side a message that expires.
type Component struct {
	width int
	left  string
	msg   *StatusMessage
	seq   uint64
	ttl   time.Duration
}

var (
	_ core.Component = (*Component)(nil)
	_ core.Sizeable  = (*Component)(nil)
)

func New() *Component {
	return &Component{ttl: DefaultTTL}
}

// SetMessage replaces the message and schedules its expiry
func (c *Component) SetMessage(content string, t MessageType) tea.Cmd {
	c.seq++
	seq := c.seq
	c.msg = &StatusMessage{Content: content, Type: t, Shown: time.Now(), seq: seq}
	return tea.Tick(c.ttl, func(time.Time) tea.Msg { return expireMsg{seq: seq} })
}

func (c *Component) ShowInfo(s string) tea.Cmd    { return c.SetMessage(s, Info) }
func (c *Component) ShowWarning(s string) tea.Cmd { return c.SetMessage(s, Warning) }
func (c *Component) ShowError(s string) tea.Cmd   { return c.SetMessage(s, Error) }
func (c *Component) ShowSuccess(s string) tea.Cmd { return c.SetMessage(s, Success) }

// Message returns the message on display, nil once it expired
func (c *Component) Message() *StatusMessage { return c.msg }

func (c *Component) SetLeftContent(s string) { c.left = s }

func (c *Component) SetSize(width, _ int) tea.Cmd {
	c.width = width
	return nil
}

func (c *Component) Init() tea.Cmd { return nil }

func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e, ok := msg.(expireMsg); ok && c.msg != nil && c.msg.seq == e.seq {
		c.msg = nil
	}
	return c, nil
}

func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}
	theme := styles.CurrentTheme()
	bar := lipgloss.NewStyle().
		Width(c.width).
		Height(1).
		MaxHeight(1).
		Padding(0, 1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase)

	inner := c.width - 2
	right := c.renderMessage()
	rw := lipgloss.Width(right)
	if rw > inner {
		right = truncate(right, inner)
		rw = lipgloss.Width(right)
	}

	// The left side gives way to the message.
	room := inner - rw
	if right != "" {
		room--
	}
	left := truncate(c.left, room)
	if right == "" {
		return bar.Render(left)
	}
	gap := max(inner-lipgloss.Width(left)-rw, 1)
	return bar.Render(left + strings.Repeat(" ", gap) + right)
}

func (c *Component) renderMessage() string {
	if c.msg == nil {
		return ""
	}
	s := styles.CurrentTheme().S()
	switch c.msg.Type {
	case Success:
		return s.Success.Render(styles.CheckIcon + " " + c.msg.Content)
	case Warning:
		return s.Warning.Render(styles.WarningIcon + " " + c.msg.Content)
	case Error:
		return s.Error.Render(styles.ErrorIcon + " " + c.msg.Content)
	}
	return c.msg.Content
}

// truncate cuts plain or styled text to width cells
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
