package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/adapters/httpapi"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_text_similarity/internal/adapters/store/sqlite"
	"github.com/baditaflorin/go_text_similarity/internal/config"
	"github.com/baditaflorin/go_text_similarity/internal/ports"
	"github.com/baditaflorin/go_text_similarity/pkg/similarity"
	"github.com/valyala/fasthttp"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	readTimeout := flag.Duration("read-timeout", 0, "HTTP read timeout (overrides config)")
	writeTimeout := flag.Duration("write-timeout", 0, "HTTP write timeout (overrides config)")
	maxRequestSize := flag.Int("max-request-size", 0, "Maximum request size in bytes (overrides config)")
	concurrency := flag.Int("concurrency", -1, "Maximum number of concurrent requests (0 = fasthttp default)")
	dbPath := flag.String("db", "", "SQLite document store path (overrides config, empty = in memory)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup (overrides config)")
	logFile := flag.String("log-file", "", "Log file path (overrides config, empty = stdout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *port, *readTimeout, *writeTimeout, *maxRequestSize, *concurrency, *dbPath, *logFile)
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "warm-up" {
			cfg.Engine.WarmUp = *warmUp
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until SIGINT or SIGTERM. The logger is flushed and closed on
// every return path.
func run(cfg config.Config) error {
	// Set up logger
	log, err := createLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting text similarity HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", cfg.Server.Concurrency,
		"store", cfg.Store.Path,
	)

	sim, err := newSimilarity(cfg, log)
	if err != nil {
		log.Error("Failed to initialize similarity engine", "error", err)
		return err
	}
	defer sim.Close()

	handler, err := httpapi.NewHandler(sim, log, httpapi.WithRequestTimeout(cfg.Server.RequestTimeout))
	if err != nil {
		log.Error("Failed to initialize HTTP handler", "error", err)
		return err
	}

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               handler.Handle,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           cfg.Server.Concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxConnsPerIP:         0, // unlimited
		MaxRequestsPerConn:    0, // unlimited
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
		return err
	}

	<-idleConnsClosed
	log.Info("Server stopped")
	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cfg *config.Config, port int, readTimeout, writeTimeout time.Duration, maxRequestSize, concurrency int, dbPath, logFile string) {
	if port > 0 {
		cfg.Server.Port = port
	}
	if readTimeout > 0 {
		cfg.Server.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		cfg.Server.WriteTimeout = writeTimeout
	}
	if maxRequestSize > 0 {
		cfg.Server.MaxRequestSize = maxRequestSize
	}
	if concurrency >= 0 {
		cfg.Server.Concurrency = concurrency
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
}

// newSimilarity builds the engine with the configured store and normalizer.
func newSimilarity(cfg config.Config, log ports.Logger) (*similarity.Similarity, error) {
	opts := []similarity.Option{
		similarity.WithLoggerAdapter(log),
		similarity.WithThreshold(cfg.Engine.Threshold),
		similarity.WithMaxInputLength(cfg.Engine.MaxInputLength),
		similarity.WithWarmUp(cfg.Engine.WarmUp),
	}
	if cfg.Engine.OptimizedNormalize {
		opts = append(opts, similarity.WithOptimizedNormalizer())
	}

	var repo *sqlite.Repository
	if cfg.Store.Path != "" {
		var err error
		repo, err = sqlite.Open(context.Background(), cfg.Store.Path, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		opts = append(opts, similarity.WithRepository(repo))
	}

	sim, err := similarity.New(opts...)
	if err != nil {
		if repo != nil {
			repo.Close()
		}
		return nil, err
	}

	log.Info("Similarity engine initialized",
		"threshold", sim.Threshold(),
		"warm_up", cfg.Engine.WarmUp,
		"cpus", runtime.NumCPU(),
	)
	return sim, nil
}

// createLogger creates and configures a logger
func createLogger(cfg config.LogConfig) (ports.Logger, error) {
	var output io.Writer = os.Stdout
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	log, err := logger.NewWithOptions(logger.Options{
		Output:     output,
		JSONFormat: cfg.JSON,
		AsyncWrite: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
