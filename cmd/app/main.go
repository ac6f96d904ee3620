package main

import (
	"LeadReceptionist/internal/config"
	"LeadReceptionist/pkg/log"
	"LeadReceptionist/pkg/redis"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	logger := log.NewLogger()
	if envErr != nil {
		// Deployments usually inject the environment directly.
		logger.Warnf("No .env file loaded: %v", envErr)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithUtils(),
		config.WithLeadConfig(),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithPublisher(),
		config.WithMiddleware(),
		config.WithExtractor(),
		config.WithMessenger(),
		config.WithCRM(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
