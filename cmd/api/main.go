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

	"github.com/strideapp/stride/backend/internal/config"
	"github.com/strideapp/stride/backend/internal/handler"
	exmodel "github.com/strideapp/stride/backend/internal/model/exercise"
	resourcemodel "github.com/strideapp/stride/backend/internal/model/resource"
	"github.com/strideapp/stride/backend/internal/service/ai"
	exerciseservice "github.com/strideapp/stride/backend/internal/service/exercise"
	journalservice "github.com/strideapp/stride/backend/internal/service/journal"
	sessionservice "github.com/strideapp/stride/backend/internal/service/session"
	triageservice "github.com/strideapp/stride/backend/internal/service/triage"
	"github.com/strideapp/stride/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, err := storage.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	log.Printf("persisted state at %s", cfg.Store.Path)

	// Fixed content stores.
	catalog := exmodel.NewMemoryStore(exmodel.Seed(), exmodel.SeedHomeExercises(), exmodel.SeedDailyGoals())
	resources := resourcemodel.NewMemoryStore(resourcemodel.Seed())

	// The acknowledgment generator is optional: without credentials the
	// triage dialogue always uses the fixed fallback text.
	var ackGenerator triageservice.AckGenerator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with fallback acknowledgments only")
		} else {
			ackGenerator = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("ark credentials not configured, acknowledgments use fallback text")
	}

	triageSvc := triageservice.NewService(ackGenerator, time.Duration(cfg.AI.AckTimeoutSeconds)*time.Second)
	sessionSvc := sessionservice.NewService(triageSvc)
	exerciseSvc := exerciseservice.NewService(catalog, store)
	journalSvc := journalservice.NewService(store)

	router := handler.NewRouter(handler.Deps{
		Sessions:  sessionSvc,
		Triage:    triageSvc,
		Exercises: exerciseSvc,
		Journal:   journalSvc,
		Catalog:   catalog,
		Resources: resources,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Stride companion backend listening on %s", addr)
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
