// PartView - part tree viewer for STL and DXF geometry
//
// Shows a hierarchy of parts with a name, a visibility flag and a colour
// each, renders the visible ones in a wireframe viewport, and exports
// reports, QR labels and part tables.
//
// Build:
//   go build -o partview ./cmd/partview
//
// Usage:
//   partview [--config path] [--log-level level] [files...]

package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/PartView/internal/logging"
	"github.com/piwi3910/PartView/internal/model"
	"github.com/piwi3910/PartView/internal/project"
	"github.com/piwi3910/PartView/internal/scene"
	"github.com/piwi3910/PartView/internal/ui"
)

type options struct {
	configPath  string
	palettePath string
	logLevel    string
	metricsAddr string
	development bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "partview [files...]",
		Short:        "Browse STL and DXF parts in a colour-coded tree",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "application config file")
	cmd.Flags().StringVar(&opts.palettePath, "palette", project.DefaultPalettePath(), "colour palette file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().BoolVar(&opts.development, "dev", false, "human-friendly development logging")
	return cmd
}

func run(opts options, files []string) error {
	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", opts.configPath, err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logCfg.Development = opts.development
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	logger := logging.MustLogger(logCfg)
	defer logger.Sync() //nolint:errcheck

	palette, err := project.LoadPalette(opts.palettePath)
	if err != nil {
		logger.Warn("palette load failed, using defaults", zap.String("path", opts.palettePath), zap.Error(err))
		palette = model.DefaultPalette()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := scene.NewMetrics(reg)
	if opts.metricsAddr != "" {
		go serveMetrics(opts.metricsAddr, reg, logger)
	}

	application := app.NewWithID("com.piwi3910.partview")
	window := application.NewWindow("PartView")

	appUI := ui.NewApp(application, window, ui.Options{
		Logger:      logger,
		Metrics:     metrics,
		Config:      cfg,
		ConfigPath:  opts.configPath,
		Palette:     palette,
		PalettePath: opts.palettePath,
	})
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 760))
	window.CenterOnScreen()

	application.Lifecycle().SetOnStarted(func() {
		appUI.OpenFiles(files)
	})

	logger.Info("starting",
		zap.String("config", opts.configPath),
		zap.Int("files", len(files)),
	)
	window.ShowAndRun()
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
