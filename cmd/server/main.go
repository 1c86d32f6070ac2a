package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/spacesedan/emotionmcp/config"
	"github.com/spacesedan/emotionmcp/internal/analysis"
	"github.com/spacesedan/emotionmcp/internal/classifier"
	"github.com/spacesedan/emotionmcp/internal/emotions"
	"github.com/spacesedan/emotionmcp/internal/logging"
	"github.com/spacesedan/emotionmcp/internal/monitoring"
	"github.com/spacesedan/emotionmcp/internal/tools"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("[Main] Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	translator, err := emotions.NewTranslator(cfg.Locale)
	if err != nil {
		return err
	}

	slog.Info("[Main] Starting emotion analysis server",
		slog.String("env", cfg.AppEnv),
		slog.String("backend", cfg.Backend),
		slog.String("locale", translator.Locale()))

	holder := classifier.NewHolder(cfg.Backend, newLoader(cfg))
	defer func() {
		if err := holder.Close(); err != nil {
			slog.Warn("[Main] Failed to release classifier", slog.String("error", err.Error()))
		}
	}()

	// Load before accepting connections.
	if cfg.PreloadModel {
		if _, err := holder.Get(ctx); err != nil {
			return err
		}
	}

	mcpServer := tools.NewServer(analysis.NewAnalyzer(holder, translator))
	sseServer := server.NewSSEServer(mcpServer, server.WithBaseURL(cfg.PublicURL))
	streamableServer := server.NewStreamableHTTPServer(mcpServer)

	healthy := &atomic.Bool{}
	healthy.Store(true)

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	mux.Handle("/mcp", streamableServer)
	mux.HandleFunc("/healthz", monitoring.HealthHandler(holder.Loaded, healthy))

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("[Main] Serving MCP tools",
			slog.String("addr", httpServer.Addr),
			slog.String("sse", cfg.PublicURL+"/sse"),
			slog.String("streamable", cfg.PublicURL+"/mcp"))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		monitoring.MonitorClassifierHealth(gctx, cfg.HealthcheckInterval, probe(holder), healthy)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("[Main] Shutting down server gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("[Main] Failed to close SSE sessions", slog.String("error", err.Error()))
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLoader(cfg *config.Config) classifier.Loader {
	switch cfg.Backend {
	case config.BackendInference:
		return classifier.NewInferenceLoader(classifier.InferenceOptions{
			Endpoint: cfg.InferenceURL,
			Token:    cfg.HFToken,
			Timeout:  cfg.InferenceTimeout,
		})
	default:
		return classifier.NewHugotLoader(classifier.HugotOptions{
			ModelName: cfg.ModelName,
			ModelDir:  cfg.ModelDir,
			OnnxFile:  cfg.ModelOnnxFile,
		})
	}
}

// probe classifies a fixed word once the model is loaded, so it never
// triggers a lazy load. /healthz reports 503 until then.
func probe(holder *classifier.Holder) monitoring.Probe {
	return func(ctx context.Context) error {
		if !holder.Loaded() {
			return nil
		}
		_, err := holder.Classify(ctx, []string{"ping"})
		return err
	}
}
