package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"petprompt/internal/config"
	"petprompt/internal/handler"
	"petprompt/pkg/llm"
	"syscall"
	"time"

	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/joho/godotenv"
	openaioption "github.com/openai/openai-go/option"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	client := newPromptClient(cfg)
	promptHandler := handler.NewPromptHandler(client, cfg.UpstreamTimeout)

	slog.Info("CORS policy",
		"origins", cfg.CORS.AllowOrigins,
		"origin_contains", cfg.CORS.AllowOriginContains,
		"localhost", cfg.CORS.AllowLocalhost,
		"credentials", cfg.CORS.AllowCredentials,
	)

	r := handler.NewRouter(promptHandler, cfg.CORS)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "port", cfg.Port, "provider", client.Name(), "model", client.Model())
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatalf("error starting server: %v", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}
}

func newPromptClient(cfg *config.Config) llm.PromptClient {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		var opts []anthropicoption.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, anthropicoption.WithBaseURL(cfg.BaseURL))
		}
		return llm.NewAnthropicClient(cfg.APIKey, cfg.Model, cfg.LLM, opts...)
	default:
		var opts []openaioption.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, openaioption.WithBaseURL(cfg.BaseURL))
		}
		return llm.NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.LLM, opts...)
	}
}
