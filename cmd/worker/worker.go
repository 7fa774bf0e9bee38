package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lutefd/crypto-api/internal/commons"
	"github.com/Lutefd/crypto-api/internal/logger"
	"github.com/Lutefd/crypto-api/internal/repository"
	"github.com/joho/godotenv"
)

type dependencies struct {
	logRepo      repository.LogRepository
	partitionMgr PartitionManager
}

type PartitionManager interface {
	Start(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	deps, err := initDependencies(config)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- runWorker(ctx, deps)
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Worker failed: %v", err)
		}
	case <-signalChan:
		log.Println("Shutdown signal received, initiating graceful shutdown...")
		cancel()

		select {
		case <-errChan:
			log.Println("Worker shut down gracefully")
		case <-time.After(commons.ShutdownTimeout):
			log.Println("Shutdown timed out")
		}
	}
}

func initDependencies(config commons.Config) (*dependencies, error) {
	logRepo, err := repository.NewPostgresLogRepository(config.PostgresConn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log repository: %w", err)
	}

	return &dependencies{
		logRepo:      logRepo,
		partitionMgr: logger.NewPartitionManager(logRepo),
	}, nil
}

// runWorker keeps the log partitions provisioned until ctx is done. The log
// repository is closed on return.
func runWorker(ctx context.Context, deps *dependencies) error {
	defer func() {
		if err := deps.logRepo.Close(); err != nil {
			log.Printf("Error closing log repository: %v", err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := deps.partitionMgr.Start(ctx); err != nil {
		return fmt.Errorf("failed to start partition manager: %w", err)
	}
	logger.Info("partition manager started")

	<-ctx.Done()
	log.Println("Worker shutting down...")
	return ctx.Err()
}
