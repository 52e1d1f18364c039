// Command flamerender renders every flame in a file to PNG without the TUI.
//
// Each flame gets a thumbnail and a full render. Both go through the
// scheduler, so the background renders pause while thumbnails are drawn.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/billie-coop/fr0st/internal/config"
	"github.com/billie-coop/fr0st/internal/delivery"
	"github.com/billie-coop/fr0st/internal/flame"
	"github.com/billie-coop/fr0st/internal/logging"
	"github.com/billie-coop/fr0st/internal/output"
	"github.com/billie-coop/fr0st/internal/render"
	"github.com/billie-coop/fr0st/internal/render/chaos"
	"github.com/billie-coop/fr0st/internal/render/sketch"
	"github.com/billie-coop/fr0st/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "flamerender: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaults := config.DefaultConfig()

	flamePath := flag.String("flame", "", "flame file (built-in samples when empty)")
	outDir := flag.String("out", defaults.OutputDir, "output directory")
	backend := flag.String("backend", defaults.DefaultBackend, "render backend")
	quality := flag.Float64("quality", defaults.Render.Quality, "samples per pixel")
	width := flag.Int("width", defaults.Render.Width, "output width")
	height := flag.Int("height", defaults.Render.Height, "output height")
	threads := flag.Int("threads", defaults.Render.Threads, "render threads")
	thumbSize := flag.Int("thumb", defaults.Thumbnail.Size, "thumbnail size, 0 to skip")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	log, err := logging.New(os.Stderr, *level)
	if err != nil {
		return err
	}
	logging.SetLogger(log)

	flames := flame.Default()
	if *flamePath != "" {
		if flames, err = flame.ParseFile(*flamePath); err != nil {
			return err
		}
	}

	backends := render.NewRegistry(chaos.New(), sketch.New())
	if !backends.Has(*backend) {
		return fmt.Errorf("%w: %q (have %s)", render.ErrUnknownBackend, *backend, strings.Join(backends.Names(), ", "))
	}

	router := delivery.NewRouter(delivery.DefaultBuffer)
	sched := scheduler.New(backends, router,
		scheduler.WithDefaultBackend(*backend),
		scheduler.WithThumbnailBackend(defaults.ThumbnailBackend),
	)

	// Each job completes once and nothing is superseded here, so the
	// buffer never fills.
	completed := make(chan *scheduler.Job, 2*len(flames)+1)
	var failed error
	sched.OnComplete(func(job *scheduler.Job, err error, d time.Duration) {
		if err != nil {
			log.Error("render failed", "flame", job.Target.Flame.Name, "kind", job.Kind, "error", err)
		} else {
			log.Info("rendered", "flame", job.Target.Flame.Name, "kind", job.Kind, "took", d.Round(time.Millisecond))
		}
		completed <- job
	})
	if err := sched.Start(); err != nil {
		return err
	}
	defer router.Close()
	defer sched.Shutdown()

	save := func(dir, name string) delivery.Callback {
		return func(img image.Image) {
			path, err := output.WritePNG(dir, name, img)
			if err != nil {
				failed = errors.Join(failed, err)
				return
			}
			log.Info("saved", "path", path)
		}
	}

	thumbsLeft := 0
	if *thumbSize > 0 {
		for _, f := range flames {
			sched.RequestThumbnail(save(filepath.Join(*outDir, "thumbs"), f.Name), render.Target{
				Flame:   f,
				Size:    image.Pt(*thumbSize, *thumbSize),
				Quality: defaults.Thumbnail.Quality,
			})
			thumbsLeft++
		}
	}

	// wait dispatches deliveries on this goroutine as jobs complete, until
	// stop returns true
	wait := func(stop func(*scheduler.Job) bool) error {
		for {
			job := <-completed
			if job.Kind == scheduler.KindThumbnail {
				thumbsLeft--
			}
			if err := flush(router); err != nil {
				return err
			}
			if stop(job) {
				return nil
			}
		}
	}

	// The background lane holds one job, so full renders go one at a time.
	for _, f := range flames {
		id, err := sched.RequestBackground(save(*outDir, f.Name), render.Target{
			Flame:   f,
			Size:    image.Pt(*width, *height),
			Quality: *quality,
			Threads: *threads,
		}, progressLogger(log, f.Name))
		if err != nil {
			return err
		}
		if err := wait(func(job *scheduler.Job) bool { return job.ID == id }); err != nil {
			return err
		}
	}

	if thumbsLeft > 0 {
		if err := wait(func(*scheduler.Job) bool { return thumbsLeft == 0 }); err != nil {
			return err
		}
	}
	return failed
}

// flush dispatches everything queued on the router. A job's delivery is
// queued before its completion hook runs.
func flush(router *delivery.Router) error {
	for router.Pending() > 0 {
		d, err := router.Next(context.Background())
		if err != nil {
			return err
		}
		if err := d.Dispatch(); err != nil {
			return err
		}
	}
	return nil
}

// progressLogger reports every tenth of the way through a render.
func progressLogger(log *slog.Logger, name string) render.ProgressFunc {
	next := 0.1
	return func(p render.Progress) render.Signal {
		if p.Fraction >= next {
			log.Info("progress", "flame", name, "done", fmt.Sprintf("%.0f%%", p.Fraction*100), "eta", p.Remaining.Round(time.Second))
			next = math.Floor(p.Fraction*10)/10 + 0.1
		}
		return render.Continue
	}
}
