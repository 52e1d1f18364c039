package styles

import (
	"fmt"
	"sort"
)

// DefaultTheme is used when a config names a theme that doesn't exist.
const DefaultTheme = "frost"

// Manager handles theme switching and registration
type Manager struct {
	themes  map[string]*Theme
	current *Theme
}

var defaultManager *Manager

// SetDefaultManager installs the manager CurrentTheme reads from. Call it
// before the program starts.
func SetDefaultManager(m *Manager) {
	defaultManager = m
}

func DefaultManager() *Manager {
	if defaultManager == nil {
		defaultManager = NewManager(DefaultTheme)
	}
	return defaultManager
}

func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

// NewManager registers the built-in themes and selects name, falling back
// to DefaultTheme.
func NewManager(name string) *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.Register(NewFrostTheme())
	m.Register(NewEmberTheme())

	if err := m.SetTheme(name); err != nil {
		m.current = m.themes[DefaultTheme]
	}
	return m
}

func (m *Manager) Register(theme *Theme) {
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	theme, ok := m.themes[name]
	if !ok {
		return fmt.Errorf("theme %s not found", name)
	}
	m.current = theme
	return nil
}

// Cycle switches to the next theme in name order and returns it.
func (m *Manager) Cycle() *Theme {
	names := m.List()
	for i, name := range names {
		if name == m.current.Name {
			m.current = m.themes[names[(i+1)%len(names)]]
			break
		}
	}
	return m.current
}

// List returns the registered theme names, sorted
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
