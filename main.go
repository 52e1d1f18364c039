// Package main is the entry point for the fr0st flame browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/billie-coop/fr0st/internal/config"
	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/billie-coop/fr0st/internal/render"
	"github.com/billie-coop/fr0st/internal/render/chaos"
	"github.com/billie-coop/fr0st/internal/render/sketch"
	"github.com/billie-coop/fr0st/internal/scheduler"
	"github.com/billie-coop/fr0st/internal/state"
	"github.com/billie-coop/fr0st/internal/tui"
	"github.com/billie-coop/fr0st/internal/tui/events"
	"github.com/billie-coop/fr0st/internal/tui/styles"
	"github.com/billie-coop/fr0st/internal/watcher"
	tea "github.com/charmbracelet/bubbletea/v2"
)

const shutdownTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flamePath := flag.String("flame", "", "flame file to open (built-in samples when empty)")
	projectDir := flag.String("dir", ".", "project directory holding .fr0st/")
	flag.Parse()

	cfgManager := config.NewManager(*projectDir)
	if err := cfgManager.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := cfgManager.Get()

	logPath := cfg.LogFile
	if logPath != "" && !filepath.IsAbs(logPath) {
		logPath = filepath.Join(*projectDir, logPath)
	}
	logFile, err := logging.Open(logPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log := logging.Logger()

	flames := flame.Default()
	if *flamePath != "" {
		if flames, err = flame.ParseFile(*flamePath); err != nil {
			return err
		}
	}

	backends := render.NewRegistry(chaos.New(), sketch.New())
	for _, name := range []string{cfg.DefaultBackend, cfg.ThumbnailBackend} {
		if !backends.Has(name) {
			return fmt.Errorf("%w: %q (have %v)", render.ErrUnknownBackend, name, backends.Names())
		}
	}

	session := state.NewSessionStore(*projectDir)
	theme := cfg.Theme
	if remembered := session.Get().Theme; remembered != "" {
		theme = remembered
	}
	themes := styles.NewManager(theme)
	styles.SetDefaultManager(themes)
	if themes.Current().Name != theme {
		log.Warn("unknown theme, using default", "theme", theme, "default", themes.Current().Name)
	}

	router := delivery.NewRouter(delivery.DefaultBuffer)
	sched := scheduler.New(backends, router,
		scheduler.WithPollInterval(cfg.PollInterval),
		scheduler.WithDefaultBackend(cfg.DefaultBackend),
		scheduler.WithThumbnailBackend(cfg.ThumbnailBackend),
	)
	broker := events.NewBroker()
	tui.Hook(sched, broker)
	if err := sched.Start(); err != nil {
		return err
	}
	log.Info("fr0st started", "flames", len(flames), "backend", cfg.DefaultBackend)

	model := tui.New(tui.Options{
		Config:    cfg,
		Flames:    flames,
		Scheduler: sched,
		Router:    router,
		Broker:    broker,

		InitialFlame: session.FlameFor(*flamePath),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if *flamePath != "" && cfg.ReloadDelay > 0 {
		w, err := watcher.NewWatcher(*flamePath, cfg.ReloadDelay, func(path string) {
			flames, err := flame.ParseFile(path)
			p.Send(tui.FlamesLoadedMsg{Flames: flames, Err: err})
		})
		if err != nil {
			log.Warn("not watching flame file", "error", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	final, runErr := p.Run()
	if m, ok := final.(*tui.Model); ok && runErr == nil {
		name, theme := m.Selection()
		if err := session.Set(state.Session{File: *flamePath, Flame: name, Theme: theme}); err != nil {
			log.Warn("session not saved", "error", err)
		}
	}

	// Stop the workers before closing the router so nothing is delivered
	// into a dead program.
	sched.Shutdown()
	router.Close()
	broker.Clear()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sched.Wait(ctx); err != nil {
		log.Warn("render loops did not stop in time", "error", err)
	}

	return runErr
}
