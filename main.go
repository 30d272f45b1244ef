package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"serieslens/internal/config"
	"serieslens/internal/lens"
	"serieslens/internal/logging"
	"serieslens/internal/report"
	"serieslens/internal/watch"
)

// Build metadata - injected at build time
var (
	BuildDate    = "unknown"
	BuildCommit  = "unknown"
	BuildVersion = "dev"
)

type options struct {
	configPath string
	lensA      string
	lensB      string
	watch      bool
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "serieslens",
		Short: "Report the shape of the A and B series lenses",
		Long: `serieslens loads two lenses, each holding temp, precip and agri series,
and prints one line per lens with the length of every series:

  A lens: 2 1 0
  B lens: 0 3 1

Lens files may be YAML, JSON or CSV. With --watch the report is printed
again whenever a lens file changes.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, out)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "serieslens.yaml", "Config file")
	flags.StringVar(&opts.lensA, "lens-a", "", "Lens A file (overrides config)")
	flags.StringVar(&opts.lensB, "lens-b", "", "Lens B file (overrides config)")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Report again when a lens file changes")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "serieslens %s (%s) - %s\n", BuildVersion, BuildCommit, BuildDate)
		},
	})

	return rootCmd
}

// loadConfig applies explicitly set flags over the config file.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("lens-a") {
		cfg.LensA = opts.lensA
	}
	if flags.Changed("lens-b") {
		cfg.LensB = opts.lensB
	}
	if flags.Changed("watch") {
		cfg.Watch = opts.watch
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Debug("serieslens starting",
		zap.String("version", BuildVersion),
		zap.String("commit", BuildCommit),
		zap.String("date", BuildDate))

	files := map[string]string{
		report.LabelA: cfg.LensA,
		report.LabelB: cfg.LensB,
	}

	lensMgr := lens.NewManager()
	for _, name := range []string{report.LabelA, report.LabelB} {
		l, err := lens.LoadFile(files[name], name)
		if err != nil {
			return fmt.Errorf("loading lens %s: %w", name, err)
		}
		lensMgr.Set(l)
		logger.Debug("Loaded lens", zap.String("lens", name), zap.String("path", files[name]))
	}

	reporter := report.New(out, logger)
	if err := reporter.ReportFrom(lensMgr); err != nil {
		return fmt.Errorf("diagnostic report: %w", err)
	}

	if !cfg.Watch {
		return nil
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher, err := watch.New(files, lensMgr, reporter, logger, time.Duration(cfg.Debounce))
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		logger.Info("Shutting down...")
	case <-ctx.Done():
	}

	cancel()
	return watcher.Stop()
}
