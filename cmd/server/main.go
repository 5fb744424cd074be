package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawblox.app/assistant/internal/api"
	"lawblox.app/assistant/internal/auth"
	"lawblox.app/assistant/internal/config"
	"lawblox.app/assistant/internal/core"
	"lawblox.app/assistant/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if cfg.Debug() {
		log.Println("Service starting in DEBUG mode")
	}

	dbPath := flag.String("db", cfg.DatabaseURL, "SQLite database file")
	port := flag.String("port", cfg.HTTPPort, "HTTP listen port")
	flag.Parse()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	// Replies come from Gemini when a key is configured, otherwise from the
	// built-in greeting responder.
	var responder core.Responder = core.NewGreetingResponder()
	if cfg.GeminiAPIKey != "" {
		llmService, err := core.NewLLMService(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize LLM service: %v", err)
		}
		defer llmService.Close()
		responder = llmService
		log.Println("Using Gemini for chat replies")
	}

	chatService := core.NewChatService(dbStore, responder)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(chatService, tokens)
	limiter := api.NewRateLimiter(cfg.AuthRateRPS, cfg.AuthRateBurst)
	if limiter == nil {
		log.Println("AUTH_RATE_RPS is not positive; auth routes are not rate limited")
	}
	router := api.NewRouter(apiHandler, limiter)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", *port)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
