package help

import (
	"testing"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("x")), // no help, not listed
	}

	md := Markdown(bindings)
	assert.Contains(t, md, "| `q` | quit |")
	assert.NotContains(t, md, "`x`")
}

func TestView(t *testing.T) {
	m := New([]key.Binding{
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "large preview")),
	})
	m.SetSize(60, 20)
	assert.Contains(t, m.View(), "preview")
}
