package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"transcribed/internal/config"
	"transcribed/internal/httpapi"
	"transcribed/internal/pipeline"
	"transcribed/internal/registry"
)

// defaultLanguages maps the built-in selectors to model files under
// models-dir; a config file overrides the whole map.
var defaultLanguages = map[string]string{
	"english": "ggml-base.en.bin",
	"spanish": "ggml-base.bin",
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; real env always wins over file values.
	_ = godotenv.Load()

	root := rootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		modelsDir  string
		maxConc    int
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:           "transcribed",
		Short:         "HTTP service for offline audio transcription and format conversion",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(addr, configPath, modelsDir, maxConc, logLevel)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("TRANSCRIBED_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	cmd.Flags().StringVar(&configPath, "config", envOr("TRANSCRIBED_CONFIG", ""), "Config file (.yaml/.json/.toml), optional")
	cmd.Flags().StringVar(&modelsDir, "models-dir", envOr("TRANSCRIBED_MODELS_DIR", "~/models/whisper"), "Directory holding recognition model files")
	cmd.Flags().IntVar(&maxConc, "max-concurrent", 0, "Ceiling on simultaneously processing requests (0=default)")
	cmd.Flags().StringVar(&logLevel, "log-level", envOr("TRANSCRIBED_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	return cmd
}

func run(addr, configPath, modelsDir string, maxConc int, logLevel string) error {
	logger := newLogger(logLevel)

	var cfg config.Config
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			logger.Error().Err(err).Str("path", configPath).Msg("load config")
			return err
		}
		cfg = c
	}
	// Flags fill whatever the config file left unset.
	if cfg.Addr == "" {
		cfg.Addr = addr
	}
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = modelsDir
	}
	if cfg.MaxConcurrentRequests == 0 {
		cfg.MaxConcurrentRequests = maxConc
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = defaultLanguages
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "english"
	}
	if cfg.LogLevel != "" {
		logger = newLogger(cfg.LogLevel)
	}

	reg, err := registry.Load(cfg.ModelsDir, cfg.Languages, cfg.DefaultLanguage)
	if err != nil {
		logger.Error().Err(err).Str("models_dir", cfg.ModelsDir).Msg("load models")
		return err
	}

	svc := pipeline.NewWithConfig(pipeline.Config{
		Registry:       reg,
		MaxConcurrent:  cfg.MaxConcurrentRequests,
		MaxUploadBytes: cfg.MaxUploadBytes,
		TempDir:        cfg.UploadTempDir,
		StageTimeout:   time.Duration(cfg.StageTimeoutSeconds) * time.Second,
		OutputFormats:  cfg.OutputFormats,
		FFmpegBin:      cfg.FFmpegBin,
		RecognizerBin:  cfg.RecognizerBin,
		Logger:         logger,
	})

	httpapi.SetLogger(logger)
	if cfg.MaxUploadBytes > 0 {
		httpapi.SetMaxUploadBytes(cfg.MaxUploadBytes)
	}
	if cfg.UploadTempDir != "" {
		httpapi.SetUploadTempDir(cfg.UploadTempDir)
	}
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, cfg.CORSAllowedMethods, cfg.CORSAllowedHeaders)

	// Cancel in-flight stage work when shutdown starts.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.MetricsMiddleware(httpapi.NewMux(svc))
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("transcribed listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		logger.Error().Err(err).Msg("server error")
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}
