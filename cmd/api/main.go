package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ASHISH26940/pintunes-api/pkg/config"
	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/ASHISH26940/pintunes-api/pkg/db/queries"
	"github.com/ASHISH26940/pintunes-api/pkg/handlers"
	"github.com/ASHISH26940/pintunes-api/pkg/llm"
	"github.com/ASHISH26940/pintunes-api/pkg/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(gin.DefaultWriter)
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("Starting PinTunes API...")

	cfg := config.LoadConfig()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		log.SetLevel(log.InfoLevel)
	}
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close(conn)

	if err := db.Migrate(context.Background(), conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	completer, closeCompleter, err := newCompleter(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	defer closeCompleter()

	users := queries.NewUserQueries(conn)
	playlistService := services.NewPlaylistService(completer, queries.NewPlaylistQueries(conn), users)
	tokens := services.NewTokenService(cfg.JwtSecret, time.Duration(cfg.JwtTTLHours)*time.Hour)

	router := handlers.SetupRouter(handlers.NewHandlers(playlistService, users, tokens), cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s:%s", cfg.Host, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Generation requests wait on the model, so give them time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.AITimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	log.Info("Server exited gracefully.")
}

// newCompleter builds the provider client selected by LLM_PROVIDER.
func newCompleter(cfg *config.Config) (llm.Completer, func(), error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		gemini, err := llm.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.AIModel)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := gemini.Close(); err != nil {
				log.Errorf("Error closing Gemini client: %v", err)
			}
		}
		log.Infof("Using Gemini SDK with model %s", cfg.AIModel)
		return gemini, closeFn, nil
	default:
		log.Infof("Using chat completion gateway %s with model %s", cfg.AIGatewayURL, cfg.AIModel)
		return llm.NewChatClient(llm.ChatConfig{
			APIKey:  cfg.AIGatewayAPIKey,
			URL:     cfg.AIGatewayURL,
			Model:   cfg.AIModel,
			Timeout: time.Duration(cfg.AITimeoutSeconds) * time.Second,
		}), func() {}, nil
	}
}
