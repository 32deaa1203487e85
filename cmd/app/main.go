package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nassim127/seniorvoice-ai/internal/config"
	"github.com/nassim127/seniorvoice-ai/pkg/log"
	"github.com/nassim127/seniorvoice-ai/pkg/nlp"
	"github.com/nassim127/seniorvoice-ai/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()

	nlpConfig := nlp.DefaultConfig()
	if raw := os.Getenv("NLP_MIN_CONFIDENCE"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logger.Fatalf("Invalid NLP_MIN_CONFIDENCE %q: %v", raw, err)
		}
		nlpConfig.MinConfidence = threshold
	}

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithNLPConfig(nlpConfig),
		config.WithTranscriber(),
		config.WithUtils(),
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
}
