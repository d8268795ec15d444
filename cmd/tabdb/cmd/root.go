package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"tabDB/internal/config"
	"tabDB/internal/engine"
	"tabDB/internal/logger"
	"tabDB/internal/metrics"
	"tabDB/internal/storage"
	"tabDB/internal/storage/filestore"
	"tabDB/internal/storage/memstore"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	dataDir     string
	logLevel    string
	metricsAddr string
	inMemory    bool
)

var rootCmd = &cobra.Command{
	Use:   "tabdb",
	Short: "tabDB - a small file-backed SQL-like database",
	Long: `tabDB stores each table as a tab-separated file under a database
directory and answers one command at a time with an [OK] or [ERROR]
response.

Commands:
  shell     - interactive prompt
  exec      - run commands given as arguments
  tables    - list the tables of a database
  databases - list databases`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the databases")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "memory", false, "keep everything in memory")
}

// loadConfig reads the config file and environment, then applies any flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// instance is everything a subcommand needs to run commands.
type instance struct {
	cfg      *config.Config
	log      *slog.Logger
	engine   *engine.DBEngine
	registry *prometheus.Registry
}

func openInstance(cmd *cobra.Command) (*instance, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	}, os.Stderr)

	var store storage.Store
	if inMemory {
		store = memstore.New()
	} else {
		fs, err := filestore.New(cfg.DataDir, filestore.WithAtomicWrites(cfg.Storage.AtomicWrites))
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		store = fs
	}

	reg := prometheus.NewRegistry()
	eng := engine.New(store,
		engine.WithLimits(engine.Limits{
			MaxTokens:  cfg.Limits.MaxTokens,
			MaxRows:    cfg.Limits.MaxRows,
			MaxColumns: cfg.Limits.MaxColumns,
		}),
		engine.WithLogger(log),
		engine.WithMetrics(metrics.New(reg)),
	)
	if err := eng.Start(); err != nil {
		return nil, err
	}

	log.Debug("tabdb ready", "data_dir", cfg.DataDir, "memory", inMemory)
	return &instance{cfg: cfg, log: log, engine: eng, registry: reg}, nil
}

func printError(msg string, err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), fmt.Sprintf("%s: %v", msg, err))
}
