package thumbs

import (
	"image"
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func strip(n, width int) *Model {
	m := New(10)
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	m.SetItems(names)
	m.SetSize(width, 8)
	return m
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name      string
		n, sel    int
		wantStart int
		wantEnd   int
	}{
		{"everything fits", 3, 2, 0, 3},
		{"selection at start", 10, 0, 0, 4},
		{"selection centred", 10, 5, 3, 7},
		{"selection at end", 10, 9, 6, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := strip(tt.n, 48) // four 12-cell boxes
			m.Select(tt.sel)
			start, end := m.Window()
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSelectClamps(t *testing.T) {
	m := strip(3, 48)
	m.Select(7)
	assert.Equal(t, 2, m.Selected())
	m.Select(-1)
	assert.Equal(t, 0, m.Selected())
}

func TestView(t *testing.T) {
	m := strip(2, 48)
	m.SetImage(1, image.NewRGBA(image.Rect(0, 0, 20, 20)))
	m.SetImage(5, image.NewRGBA(image.Rect(0, 0, 20, 20)))

	view := m.View()
	assert.Equal(t, 24, lipgloss.Width(view))
	assert.Equal(t, 8, lipgloss.Height(view)) // 5 image rows, label, border
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "sierpins…", truncate("sierpinski-gasket", 9))
}
