package state

import (
	"path/filepath"
)

// Session is what the browser remembers between runs.
type Session struct {
	// Flame file the session belongs to, empty for the built-in samples
	File  string `yaml:"file"`
	Flame string `yaml:"flame"`
	Theme string `yaml:"theme"`
}

// SessionStore persists the last session under .fr0st/.
type SessionStore struct {
	*Store[Session]
}

// NewSessionStore opens .fr0st/session.yaml in projectPath.
func NewSessionStore(projectPath string) *SessionStore {
	path := filepath.Join(projectPath, ".fr0st", "session.yaml")
	return &SessionStore{Store: NewStore(path, Session{})}
}

// FlameFor returns the remembered flame name, but only if it was chosen in
// the same file.
func (s *SessionStore) FlameFor(file string) string {
	sess := s.Get()
	if sess.File != file {
		return ""
	}
	return sess.Flame
}
