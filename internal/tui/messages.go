package tui

import (
	"time"

	"github.com/billie-coop/fr0st/internal/flame"
)

// statusTickMsg refreshes the scheduler status panel
type statusTickMsg time.Time

// renderSavedMsg reports a background render written to disk
type renderSavedMsg struct {
	flame string
	path  string
	err   error
}

// FlamesLoadedMsg replaces the flame list, sent when the open file is
// reloaded
type FlamesLoadedMsg struct {
	Flames []*flame.Flame
	Err    error
}
