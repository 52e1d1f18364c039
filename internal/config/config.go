package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/billie-coop/fr0st/internal/render"
)

// Config is the fr0st configuration
type Config struct {
	// Backend used by previews and renders that don't name one
	DefaultBackend string `yaml:"default_backend"`
	// Backend every thumbnail uses
	ThumbnailBackend string `yaml:"thumbnail_backend"`
	// How often idle render loops look for work
	PollInterval time.Duration `yaml:"poll_interval"`
	// Quiet period before an edited flame file is reloaded, 0 disables
	// watching
	ReloadDelay time.Duration `yaml:"reload_delay"`

	Preview   PreviewConfig   `yaml:"preview"`
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Render    RenderConfig    `yaml:"render"`

	// UI preferences
	Theme string `yaml:"theme"`

	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	OutputDir string `yaml:"output_dir"`
}

type PreviewConfig struct {
	Quality float64 `yaml:"quality"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
}

type ThumbnailConfig struct {
	Quality float64 `yaml:"quality"`
	Size    int     `yaml:"size"`
}

type RenderConfig struct {
	Quality float64 `yaml:"quality"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Threads int     `yaml:"threads"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DefaultBackend:   render.BackendChaos,
		ThumbnailBackend: render.BackendSketch,
		PollInterval:     10 * time.Millisecond,
		ReloadDelay:      300 * time.Millisecond,
		Preview: PreviewConfig{
			Quality: 2,
			Width:   160,
			Height:  120,
		},
		Thumbnail: ThumbnailConfig{
			Quality: 1,
			Size:    48,
		},
		Render: RenderConfig{
			Quality: 50,
			Width:   640,
			Height:  480,
			Threads: 4,
		},
		Theme:     "frost",
		LogLevel:  "info",
		LogFile:   filepath.Join(".fr0st", "fr0st.log"),
		OutputDir: "renders",
	}
}

// Validate reports settings the renderer cannot work with.
func (c *Config) Validate() error {
	for _, b := range []struct{ key, name string }{
		{"default_backend", c.DefaultBackend},
		{"thumbnail_backend", c.ThumbnailBackend},
	} {
		if b.name == "" {
			return fmt.Errorf("%s is required", b.key)
		}
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}

	if c.ReloadDelay < 0 {
		return fmt.Errorf("reload delay must not be negative, got %s", c.ReloadDelay)
	}

	if c.Preview.Quality <= 0 || c.Thumbnail.Quality <= 0 || c.Render.Quality <= 0 {
		return fmt.Errorf("quality must be positive")
	}

	if c.Preview.Width < 1 || c.Preview.Height < 1 {
		return fmt.Errorf("preview size must be at least 1x1, got %dx%d", c.Preview.Width, c.Preview.Height)
	}

	if c.Thumbnail.Size < 1 {
		return fmt.Errorf("thumbnail size must be at least 1, got %d", c.Thumbnail.Size)
	}

	if c.Render.Width < 1 || c.Render.Height < 1 {
		return fmt.Errorf("render size must be at least 1x1, got %dx%d", c.Render.Width, c.Render.Height)
	}

	if c.Render.Threads < 1 {
		return fmt.Errorf("render threads must be at least 1")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Manager handles configuration loading and saving
type Manager struct {
	projectPath string
	configPath  string
	config      *Config
}

// NewManager creates a new configuration manager
func NewManager(projectPath string) *Manager {
	dir := filepath.Join(projectPath, ".fr0st")
	return &Manager{
		projectPath: projectPath,
		configPath:  filepath.Join(dir, "config.yaml"),
		config:      DefaultConfig(),
	}
}

// Path returns the location of the config file
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk, creating defaults if needed
func (m *Manager) Load() error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create .fr0st directory: %w", err)
	}

	if err := m.ensureGitignore(); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return m.Save()
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// missing keys keep their defaults
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	m.expandEnvVars(config)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}

	m.config = config
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	next := *m.config

	var err error
	switch key {
	case "default_backend":
		next.DefaultBackend = value
	case "thumbnail_backend":
		next.ThumbnailBackend = value
	case "poll_interval":
		next.PollInterval, err = time.ParseDuration(value)
	case "reload_delay":
		next.ReloadDelay, err = time.ParseDuration(value)
	case "preview.quality":
		next.Preview.Quality, err = strconv.ParseFloat(value, 64)
	case "render.quality":
		next.Render.Quality, err = strconv.ParseFloat(value, 64)
	case "render.threads":
		next.Render.Threads, err = strconv.Atoi(value)
	case "theme":
		next.Theme = value
	case "log_level":
		next.LogLevel = value
	case "log_file":
		next.LogFile = value
	case "output_dir":
		next.OutputDir = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := next.Validate(); err != nil {
		return err
	}

	m.config = &next
	return m.Save()
}

// ensureGitignore creates a .gitignore in .fr0st/ with smart defaults
func (m *Manager) ensureGitignore() error {
	gitignorePath := filepath.Join(filepath.Dir(m.configPath), ".gitignore")

	if _, err := os.Stat(gitignorePath); !os.IsNotExist(err) {
		return nil
	}

	gitignoreContent := `# fr0st data directory .gitignore
#
# Config is worth committing, logs and the per-user session are not

*.log
*.tmp
session.yaml
.DS_Store

cache/
tmp/

!config.yaml
!.gitignore
`

	return os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644)
}

// expandEnvVars expands environment variables in string settings
func (m *Manager) expandEnvVars(config *Config) {
	config.DefaultBackend = expandString(config.DefaultBackend)
	config.ThumbnailBackend = expandString(config.ThumbnailBackend)
	config.Theme = expandString(config.Theme)
	config.LogFile = expandString(config.LogFile)
	config.OutputDir = expandString(config.OutputDir)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandString expands environment variables in a string
// Supports $VAR and ${VAR} syntax
func expandString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return original if env var not found
		return match
	})
}
