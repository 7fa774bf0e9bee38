package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/Lutefd/crypto-api/internal/commons"
	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/Lutefd/crypto-api/internal/repository"
	"github.com/Lutefd/crypto-api/internal/service"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type dependencies struct {
	loadConfig func() (commons.Config, error)
	openDB     func(driverName, dataSourceName string) (*sql.DB, error)
	loadEnv    func(...string) error
}

var defaultDeps = dependencies{
	loadConfig: commons.LoadConfig,
	openDB:     sql.Open,
	loadEnv:    godotenv.Load,
}

var defaultCurrencies = []model.Currency{
	{Ticker: "BTC", Name: "Bitcoin", NumberOfCoins: 16770000, MarketCap: 189580000000},
	{Ticker: "ETH", Name: "Ethereum", NumberOfCoins: 96710000, MarketCap: 69280000000},
	{Ticker: "XRP", Name: "Ripple", NumberOfCoins: 38590000000, MarketCap: 64750000000},
	{Ticker: "LTC", Name: "Litecoin", NumberOfCoins: 55000000, MarketCap: 5500000000},
	{Ticker: "ADA", Name: "Cardano", NumberOfCoins: 25930000000, MarketCap: 6480000000},
}

func main() {
	if err := run(context.Background(), defaultDeps); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, deps dependencies) error {
	if err := deps.loadEnv(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	config, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	db, err := deps.openDB("postgres", config.PostgresConn)
	if err != nil {
		return fmt.Errorf("error opening database connection: %w", err)
	}

	repo, err := repository.NewPostgresCurrencyRepository(config.PostgresConn, db)
	if err != nil {
		db.Close()
		return fmt.Errorf("error connecting to the database: %w", err)
	}
	defer repo.Close()

	created, err := seedCurrencies(ctx, service.NewCurrencyService(repo), defaultCurrencies)
	if err != nil {
		return fmt.Errorf("error seeding currencies: %w", err)
	}

	fmt.Printf("Seeded %d of %d currencies\n", created, len(defaultCurrencies))
	return nil
}

// seedCurrencies adds every currency whose ticker is still free and
// returns how many were created.
func seedCurrencies(ctx context.Context, svc service.CurrencyServiceInterface, currencies []model.Currency) (int, error) {
	created := 0
	for _, currency := range currencies {
		_, err := svc.AddCurrency(ctx, currency)
		switch {
		case err == nil:
			created++
		case errors.Is(err, model.ErrCurrencyAlreadyExists):
			continue
		default:
			return created, fmt.Errorf("failed to seed %s: %w", currency.Ticker, err)
		}
	}
	return created, nil
}
