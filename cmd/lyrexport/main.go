// Package main provides the CLI entry point for lyrexport.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/lyrexport/pkg/adapters/ffmpegcli"
	"github.com/user/lyrexport/pkg/adapters/logger"
	"github.com/user/lyrexport/pkg/adapters/mp4probe"
	"github.com/user/lyrexport/pkg/adapters/osfilesystem"
	"github.com/user/lyrexport/pkg/config"
	"github.com/user/lyrexport/pkg/exporter"
	"github.com/user/lyrexport/pkg/framestore"
	"github.com/user/lyrexport/pkg/ports"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:  "lyrexport",
		Usage: "Batch video export for staged frame sequences",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error, quiet)",
			},
		},
		Commands: []*cli.Command{
			exportCommand(),
			sweepCommand(),
			statsCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file if given and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}
	if lv := c.String("log-level"); lv != "" {
		cfg.LogLevel = lv
	}
	return cfg, nil
}

func newLogger(cfg config.Config) ports.Logger {
	if cfg.Level() == ports.LevelQuiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(cfg.Level())
}

func newStore(cfg config.Config, log ports.Logger) (*framestore.Store, error) {
	return framestore.New(cfg.TempRoot, osfilesystem.New(), log,
		framestore.WithRetention(cfg.Retention()),
		framestore.WithSweepInterval(cfg.SweepInterval()),
	)
}

func newService(cfg config.Config, store *framestore.Store, log ports.Logger) *exporter.Service {
	var encOpts []ffmpegcli.Option
	if cfg.FFmpegPath != "" {
		encOpts = append(encOpts, ffmpegcli.WithPath(cfg.FFmpegPath))
	}
	enc := ffmpegcli.New(log, encOpts...)

	return exporter.New(store, enc, osfilesystem.New(), log,
		exporter.WithBatchSize(cfg.BatchSize),
		exporter.WithContinuityPolicy(cfg.Policy()),
		exporter.WithProber(mp4probe.NewProber()),
	)
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Encode a directory of raw RGBA frames into an MP4",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "frames-dir", Aliases: []string{"d"}, Required: true, Usage: "Directory of frame_NNNNNN.rgba files"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "Output MP4 file path"},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Required: true, Usage: "Frame width in pixels"},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Required: true, Usage: "Frame height in pixels"},
			&cli.Float64Flag{Name: "fps", Value: 30, Usage: "Frame rate"},
			&cli.StringFlag{Name: "quality", Aliases: []string{"q"}, Value: "standard", Usage: "Quality tier (draft, standard, high, ultra)"},
			&cli.StringFlag{Name: "audio", Aliases: []string{"a"}, Usage: "Optional audio track to mux in"},
			&cli.IntFlag{Name: "batch-size", Usage: "Frames per batch segment"},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if n := c.Int("batch-size"); n > 0 {
		cfg.BatchSize = n
	}
	log := newLogger(cfg)

	store, err := newStore(cfg, log)
	if err != nil {
		return err
	}
	svc := newService(cfg, store, log)
	defer svc.Dispose()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Initialize(ctx); err != nil {
		return err
	}

	notifier := newConsoleNotifier(log)
	svc.AddNotifier(notifier)

	sessionID, err := svc.CreateSession("")
	if err != nil {
		return err
	}

	width := c.Int("width")
	height := c.Int("height")
	total, err := stageFrames(svc, sessionID, c.String("frames-dir"), width, height)
	if err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("no frames found in %s", c.String("frames-dir"))
	}
	log.Info(l10n.F("Staged %d frames", total))

	err = svc.QueueExport(exporter.Job{
		SessionID:   sessionID,
		TotalFrames: total,
		FPS:         c.Float64("fps"),
		Width:       cfg.Width,
		Height:      cfg.Height,
		Tier:        ports.ParseQualityTier(c.String("quality")),
		AudioPath:   c.String("audio"),
	})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		svc.CancelCurrent()
		return nil
	case res := <-notifier.Done():
		if res.err != nil {
			return res.err
		}
		if err := copyFile(res.outputPath, c.String("output")); err != nil {
			return fmt.Errorf("copy output: %w", err)
		}
		if err := svc.CleanupTempSession(sessionID); err != nil {
			log.Warn(l10n.F("Session cleanup failed for %s: %s", sessionID, err))
		}
		fmt.Println(c.String("output"))
		return nil
	}
}

// stageFrames reads consecutively numbered raw RGBA files starting at frame 0
// and stages each through the export service. Returns the number staged.
func stageFrames(svc *exporter.Service, sessionID, dir string, width, height int) (int, error) {
	expected := width * height * 4
	count := 0
	for {
		path := filepath.Join(dir, fmt.Sprintf("frame_%06d.rgba", count))
		pixels, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return count, nil
			}
			return count, err
		}
		if len(pixels) != expected {
			return count, fmt.Errorf("frame %s is %d bytes, want %d for %dx%d RGBA", path, len(pixels), expected, width, height)
		}
		if _, err := svc.SaveFrameImage(sessionID, count, pixels, width, height); err != nil {
			return count, err
		}
		count++
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func sweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Remove orphaned export sessions from the temp root",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			store, err := newStore(cfg, log)
			if err != nil {
				return err
			}
			removed, err := store.SweepOrphans()
			if err != nil {
				return err
			}
			fmt.Printf("removed %d orphaned sessions\n", removed)
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show storage usage for the temp root",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			store, err := newStore(cfg, log)
			if err != nil {
				return err
			}
			stats, err := store.Stats("")
			if err != nil {
				return err
			}
			fmt.Printf("root:  %s\n", store.Root())
			fmt.Printf("used:  %d bytes\n", stats.UsedBytes)
			fmt.Printf("free:  %d bytes\n", stats.FreeBytes)
			fmt.Printf("total: %d bytes (%.2f%% used)\n", stats.TotalBytes, stats.UsagePercent)
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Printf("lyrexport %s\n", version)
			return nil
		},
	}
}
