package status

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	assert.Equal(t, Error, ParseType("error"))
	assert.Equal(t, Warning, ParseType("warning"))
	assert.Equal(t, Success, ParseType("success"))
	assert.Equal(t, Info, ParseType("whatever"))
}

func TestClearOnlyCurrentMessage(t *testing.T) {
	c := New()
	c.ShowInfo("first")
	stale := expireMsg{seq: c.Message().seq}
	c.ShowError("second")

	c.Update(stale)
	require.NotNil(t, c.Message())
	assert.Equal(t, "second", c.Message().Content)

	c.Update(expireMsg{seq: c.Message().seq})
	assert.Nil(t, c.Message())
}

func TestViewFitsWidth(t *testing.T) {
	c := New()
	c.SetSize(40, 1)
	c.SetLeftContent(strings.Repeat("left ", 20))
	c.ShowSuccess("saved spiral.png")

	view := c.View()
	assert.Equal(t, 40, lipgloss.Width(view))
	assert.Contains(t, view, "saved spiral.png")
}

func TestEmptyWhenUnsized(t *testing.T) {
	c := New()
	c.ShowInfo("hello")
	assert.Empty(t, c.View())
}
