package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rahhal-app/rahhal/backend/internal/config"
	"github.com/rahhal-app/rahhal/backend/internal/handler"
	advisorModel "github.com/rahhal-app/rahhal/backend/internal/model/advisor"
	"github.com/rahhal-app/rahhal/backend/internal/secret"
	"github.com/rahhal-app/rahhal/backend/internal/service/advisor"
	"github.com/rahhal-app/rahhal/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The advisor cannot run without a credential, so resolution failures
	// stop the process here.
	apiKey, err := secret.Resolve()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	chatModel, err := cfg.LLM.NewChatModel(ctx, apiKey)
	if err != nil {
		log.Fatalf("failed to initialize chat model: %v", err)
	}

	profile, err := advisorModel.Load(cfg.Advisor.ProfileFile)
	if err != nil {
		log.Fatalf("failed to load advisor profile: %v", err)
	}

	chatService := chat.NewService()
	advisorService := advisor.NewService(chatModel, profile, cfg.LLM.Model)
	log.Printf("advisor %q ready, provider=%s model=%s", profile.Name, cfg.LLM.Provider, cfg.LLM.Model)

	router := handler.NewRouter(advisorService, chatService, cfg.Chat.ContextWindow)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr, err := serverCfg.Addr()
	if err != nil {
		log.Fatalf("invalid server configuration: %v", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Rahhal backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
