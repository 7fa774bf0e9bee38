package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lutefd/crypto-api/internal/commons"
	"github.com/Lutefd/crypto-api/internal/logger"
	"github.com/Lutefd/crypto-api/internal/repository"
	"github.com/Lutefd/crypto-api/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	currencyRepo, err := repository.NewPostgresCurrencyRepository(config.PostgresConn, nil)
	if err != nil {
		log.Fatalf("Failed to initialize currency repository: %v", err)
	}
	defer currencyRepo.Close()

	if config.LogToDatabase {
		logRepo, err := repository.NewPostgresLogRepository(config.PostgresConn, nil)
		if err != nil {
			log.Fatalf("Failed to initialize log repository: %v", err)
		}
		logger.InitLogger(logRepo)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), commons.ShutdownTimeout)
			defer cancel()
			if err := logger.Shutdown(ctx); err != nil {
				log.Printf("Error flushing logs: %v", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(config, currencyRepo)
	if err := srv.Start(ctx); err != nil {
		logger.Errorf("server stopped: %v", err)
	}
}
