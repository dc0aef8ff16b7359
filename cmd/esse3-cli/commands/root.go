package commands

import (
	"context"
	"esse3report/lib/configutil"
	"esse3report/lib/scrapers/esse3"
	"esse3report/lib/serviceutil"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "esse3-cli",
	Short: "esse3-cli scrapes esse3 exam schedules into per-professor reports.",
}

var verbose *bool

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	cobra.OnInitialize(func() {
		if *verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	})
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	BaseUrl        string   `json:"base_url"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	RequestDelayMs int      `json:"request_delay_ms"`
	SchoolPrefixes []string `json:"school_prefixes"`
	DebugDir       string   `json:"debug_dir"`
}

func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = "https://uniparthenope.esse3.cineca.it"
	}
	if cfg.RequestDelayMs == 0 {
		cfg.RequestDelayMs = 500
	}
	return cfg
}

func newClient(ctx context.Context) *esse3.Client {
	cfg := loadConfig()
	client, err := esse3.NewClient(ctx, esse3.ClientOptions{
		BaseUrl:        cfg.BaseUrl,
		Timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
		RequestDelay:   time.Duration(cfg.RequestDelayMs) * time.Millisecond,
		SchoolPrefixes: cfg.SchoolPrefixes,
		DebugDir:       cfg.DebugDir,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize esse3 client", err)
	}
	return client
}
