// Command oxy-backdrop renders an animated 3D model as a window backdrop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Carmen-Shannon/oxy-backdrop/engine"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/hosterror"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/loader"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/logging"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/probe"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/telemetry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	if err := run(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "oxy-backdrop: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	graylog := ""
	if cfg.Graylog.Enabled {
		graylog = cfg.Graylog.Address
	}
	log, err := logging.New(logging.Options{
		Level:          cfg.LogLevel,
		LogsDir:        cfg.LogsDir,
		GraylogAddress: graylog,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	instruments := telemetry.Default()
	hostErrors := hosterror.NewChannel()
	defer hostErrors.Recover("main")

	ld := loader.NewLoader(loader.BackendTypeGLTF,
		loader.WithWorkers(cfg.Loader.Workers),
		loader.WithLogger(log.Logger),
		loader.WithInstruments(instruments),
	)
	prober := probe.NewProbe(probe.BackendTypeWGPU,
		probe.WithForceFallbackAdapter(cfg.Renderer.ForceSoftware),
		probe.WithLogger(log.Logger),
	)

	presentMode := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	rendererOptions := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithFrameLimit(cfg.Renderer.FrameLimit),
		renderer.WithHostErrors(hostErrors),
		renderer.WithLogger(log.Logger),
	}

	engineOptions := []engine.EngineBuilderOption{
		engine.WithLoader(ld),
		engine.WithProbe(prober),
		engine.WithHostErrors(hostErrors),
		engine.WithAssetPath(cfg.Asset.Path),
		engine.WithLoadTimeout(cfg.Loader.Timeout),
		engine.WithProfiling(cfg.Renderer.Profile),
		engine.WithInstruments(instruments),
		engine.WithLogger(log.Logger),
	}
	if len(cfg.ErrorKeywords) > 0 {
		engineOptions = append(engineOptions, engine.WithErrorKeywords(cfg.ErrorKeywords))
	}

	backend := renderer.BackendTypeWGPU
	var surface renderer.Surface
	switch strings.ToLower(cfg.Renderer.Backend) {
	case config.BackendHeadless:
		backend = renderer.BackendTypeHeadless
	default:
		w, err := window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
		engineOptions = append(engineOptions, engine.WithWindow(w))
		surface = w
	}
	r, err := engine.OpenRenderer(prober, backend, surface, log.Logger, rendererOptions...)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	eng, err := engine.NewEngine(append(engineOptions, engine.WithRenderer(r))...)
	if err != nil {
		r.Release()
		return err
	}
	defer eng.Release()

	if cfg.Asset.Preload {
		eng.Preload()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("asset", cfg.Asset.Path).
		Str("backend", cfg.Renderer.Backend).
		Msg("starting backdrop")
	return eng.Run(ctx)
}
