package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/config"
	"go-procurement-fixtures/internal/handler"
	"go-procurement-fixtures/internal/repository"
	"go-procurement-fixtures/internal/service"
	"go-procurement-fixtures/internal/ws"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// 2. Load Config
	cfg, err := config.Load(os.Getenv("FIXTURES_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatal(err)
	}

	// 3. Setup WebSocket Hub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wsHub := ws.NewHub(logger)
	go wsHub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	sink := ws.NewBroadcastSink(repository.NewFileSink(), wsHub)
	genService, err := service.NewGeneratorService(cfg, sink, clock.NewSystem(), logger)
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// 5. Setup Fiber
	app := handler.NewRouter(genService, wsHub)

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
