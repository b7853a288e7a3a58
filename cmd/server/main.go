package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/thavon/voice-lead-service/internal/config"
	"github.com/thavon/voice-lead-service/internal/handler"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"go.uber.org/zap"
)

// Server represents the voice lead service
type Server struct {
	config         *config.ServiceConfig
	router         *mux.Router
	handlerManager *handler.HandlerManager
}

// NewServer creates a new voice lead service server
func NewServer(cfg *config.ServiceConfig) *Server {
	router := mux.NewRouter()

	// Handler manager creates all services internally
	handlerManager, err := handler.NewHandlerManager(cfg)
	if err != nil {
		logger.Base().Error("failed to initialize handler manager", zap.Error(err))
		return nil
	}

	handlerManager.SetupAllRoutes(router)

	return &Server{
		config:         cfg,
		router:         router,
		handlerManager: handlerManager,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Base().Info("starting server",
		zap.String("addr", addr),
		zap.String("instance", s.config.InstanceID),
	)
	return server.ListenAndServe()
}

func main() {
	// .env is optional; real deployments inject the environment directly
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file found, using environment variables")
	}

	if _, err := logger.Init(os.Getenv("LOG_ENV")); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.LoadServiceConfigFromEnv()
	if cfg.InstanceID == "default-pod" {
		if hostname, err := os.Hostname(); err == nil && hostname != "" {
			cfg.InstanceID = hostname
		}
	}

	server := NewServer(cfg)
	if server == nil {
		logger.Base().Fatal("failed to create server")
	}

	if err := server.Start(); err != nil {
		logger.Base().Fatal("server exited", zap.Error(err))
	}
}
