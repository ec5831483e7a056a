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

	"github.com/gin-gonic/gin"

	httpapi "replymate/internal/adapters/api/http"
	"replymate/internal/adapters/websocket"
	"replymate/internal/pkg/constants"
	"replymate/internal/pkg/factory"
	"replymate/internal/pkg/logutil"
	"replymate/pkg/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logutil.NewLogger(logutil.LogConfig{
		Level:       logutil.ParseLevel(cfg.Logging.Level),
		Format:      cfg.Logging.Format,
		ServiceName: constants.ServiceName,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	sf := factory.NewServiceFactory(logger)
	container, err := sf.Initialize(ctx, factory.InitializationOptions{
		Config:                cfg,
		ValidateConfiguration: true,
	})
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer container.Shutdown()

	// Start the WebSocket hub on the event bus
	wsHub := websocket.NewHub()
	if err := wsHub.Start(ctx, container.Bus); err != nil {
		log.Fatalf("Failed to start WebSocket hub: %v", err)
	}

	// Initialize HTTP server
	if cfg.Logging.Level == constants.LogLevelDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	apiHandlers := httpapi.NewAPIHandlers(
		container.Accounts,
		container.Replies,
		container.Store,
		container.Session,
		container.Storage,
		container.Backend,
		container.Collector,
		wsHub,
	)
	apiHandlers.SetupRoutes(router, cfg.Server.CORSEnabled)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", logutil.Fields{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", logutil.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}
