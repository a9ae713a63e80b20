package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"docquiz/internal/auth"
	"docquiz/internal/config"
	"docquiz/internal/generation"
	"docquiz/pkg/cache"
	"docquiz/pkg/database"
	"docquiz/pkg/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
	cfg := config.FromEnv()

	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is not set")
	}

	// Initialize database
	db, err := database.NewPostgresDB(&database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.SummaryTTL)
	defer redisCache.Close()
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Printf("Warning: redis unavailable, summaries will be read from the database: %v", err)
	}

	// Initialize the model client
	model, err := generation.NewGeminiModel(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to initialize model: %v", err)
	}
	defer model.Close()

	// Initialize WebSocket hub
	wsHub := websocket.NewHub(cfg.CORSOrigins)
	go wsHub.Run()

	// Initialize services and handlers
	tokens := auth.NewService(cfg.JWTSecret, cfg.SummaryTTL)
	repo := generation.NewRepository(db)
	service := generation.NewService(repo, redisCache, model, wsHub, cfg.QuestionCount)
	handler := generation.NewHandler(service, tokens, cfg.MaxUploadBytes)

	// Setup router
	router := mux.NewRouter()
	handler.Routes(router)
	router.HandleFunc("/ws/{documentID}", wsHub.HandleWebSocket)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length", generation.TokenHeader, "X-Document-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      corsMiddleware.Handler(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
