// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/iitigpt/go-campusgpt/internal/config"
	"github.com/iitigpt/go-campusgpt/internal/domain"
	"github.com/iitigpt/go-campusgpt/internal/handlers"
	"github.com/iitigpt/go-campusgpt/internal/middleware"
	"github.com/iitigpt/go-campusgpt/internal/ratelimit"
	chatrepo "github.com/iitigpt/go-campusgpt/internal/repository/chat"
	messagerepo "github.com/iitigpt/go-campusgpt/internal/repository/message"
	userrepo "github.com/iitigpt/go-campusgpt/internal/repository/user"
	"github.com/iitigpt/go-campusgpt/internal/services"
	"github.com/iitigpt/go-campusgpt/internal/services/assistant"
	"github.com/iitigpt/go-campusgpt/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	logger := services.NewLogger("campusgpt")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewGormUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	messageRepo := messagerepo.NewMessageRepository(db)

	// --- Services ---
	assistantConfig := assistant.DefaultConfig()
	assistantConfig.APIKey = cfg.AssistantAPIKey
	assistantConfig.BaseURL = cfg.AssistantBaseURL
	assistantConfig.Model = cfg.AssistantModel
	assistantConfig.Timeout = cfg.AssistantTimeout
	if err := assistantConfig.Validate(); err != nil {
		log.Fatalf("FATAL: Assistant configuration invalid: %v", err)
	}
	provider := assistant.NewOpenAIProvider(assistantConfig)

	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, logger)

	chatService, err := services.NewChatService(chatRepo, messageRepo, provider, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	healthHandler := handlers.NewHealthHandler(db)

	// --- Rate Limiting (register/login only) ---
	authLimiter := ratelimit.NewMemoryLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()
	rateLimited := func(h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(authLimiter, "auth", logger)(
			middleware.AuthSuccess(authLimiter)(h))
	}

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.RequireAuth(authService)

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.RequestLogger(logger))

	// --- Public Routes ---
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/api/register", rateLimited(authHandler.Register)).Methods("POST")
	r.Handle("/api/login", rateLimited(authHandler.Login)).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chats/{id:[0-9]+}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.AppendMessage).Methods("POST")
	api.HandleFunc("/chats/{id:[0-9]+}/ask", chatHandler.Ask).Methods("POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("server starting", "port", cfg.ServerPort, "environment", cfg.Environment)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
