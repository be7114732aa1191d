// Package main is the application entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankbot-go/internal/cache"
	"bankbot-go/internal/config"
	"bankbot-go/internal/gate"
	"bankbot-go/internal/handler"
	"bankbot-go/internal/library"
	"bankbot-go/internal/middleware"
	"bankbot-go/internal/repository"
	"bankbot-go/internal/service"
	"bankbot-go/pkg/database"
	"bankbot-go/pkg/llm"
	"bankbot-go/pkg/log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	appName    = "BankBot AI"
	appVersion = "1.0"
)

func main() {
	// 1. Load .env (if present) and the YAML configuration.
	_ = godotenv.Load()
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. Initialize the logger.
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("logger initialized")

	// 3. Load the rule library. A broken library file is a startup-fatal
	// configuration error, not a per-request concern.
	lib, err := library.Load(cfg.Library.Path)
	if err != nil {
		log.Fatal("failed to load banking library", err)
	}
	log.Infof("banking library loaded with %d entries", lib.Len())

	// 4. Choose the session store.
	var sessionRepo repository.SessionRepository
	var healthPinger handler.Pinger
	switch cfg.Session.Store {
	case "redis":
		database.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		sessionRepo = repository.NewRedisSessionRepository(database.RDB, cfg.Session.RedisKey)
		healthPinger = redisPinger{}
	default:
		sessionRepo = repository.NewFileSessionRepository(cfg.Session.FilePath)
	}

	// 5. Wire services (dependency injection).
	g := gate.New(cfg.Chat.ExtraKeywords...)
	responseCache := cache.New(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Cache.MaxEntries,
		nil,
	)
	clients := llm.NewClients(cfg.LLM)
	sessionService := service.NewSessionService(sessionRepo)
	chatService := service.NewChatService(
		g, lib, responseCache, clients,
		cfg.LLM.Provider, cfg.Chat.MaxQuestionLen,
		sessionService,
	)

	// 6. Set up the router.
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), cors.Default())

	modelName := cfg.LLM.Gemini.Model
	if cfg.LLM.Provider == "ollama" {
		modelName = cfg.LLM.Ollama.Model
	}

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/chat", handler.NewChatHandler(chatService).Ask)

		sessions := apiV1.Group("/sessions")
		{
			sessionHandler := handler.NewSessionHandler(sessionService)
			sessions.GET("", sessionHandler.List)
			sessions.GET("/current", sessionHandler.Current)
			sessions.POST("/save", sessionHandler.Save)
			sessions.POST("/new", sessionHandler.NewChat)
			sessions.DELETE("", sessionHandler.ClearAll)
		}

		healthHandler := handler.NewHealthHandler(healthPinger, appName, appVersion, modelName)
		apiV1.GET("/health", healthHandler.Health)
		apiV1.GET("/system/info", healthHandler.SystemInfo)
	}

	// 7. Start the HTTP server with graceful shutdown.
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, closing server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP server shutdown failed: %v", err)
	}

	log.Info("server stopped gracefully")
}

// redisPinger adapts the global Redis client to the health check.
type redisPinger struct{}

func (redisPinger) Ping() error {
	return database.RDB.Ping(context.Background()).Err()
}
