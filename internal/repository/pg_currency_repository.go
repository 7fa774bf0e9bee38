package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

const currencyColumns = `ticker, name, number_of_coins, market_cap`

type PostgresCurrencyRepository struct {
	db *sql.DB
}

// NewPostgresCurrencyRepository opens a connection for connURL unless db is
// already provided.
func NewPostgresCurrencyRepository(connURL string, db *sql.DB) (*PostgresCurrencyRepository, error) {
	if db == nil {
		var err error
		db, err = sql.Open("postgres", connURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	err := db.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresCurrencyRepository{db: db}, nil
}

func (r *PostgresCurrencyRepository) GetByTicker(ctx context.Context, ticker string) (*model.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE ticker = $1`
	var currency model.Currency
	err := r.db.QueryRowContext(ctx, query, ticker).Scan(
		&currency.Ticker, &currency.Name, &currency.NumberOfCoins, &currency.MarketCap,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

func (r *PostgresCurrencyRepository) ExistsByTicker(ctx context.Context, ticker string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM currencies WHERE ticker = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, ticker).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check currency: %w", err)
	}
	return exists, nil
}

func (r *PostgresCurrencyRepository) Create(ctx context.Context, currency *model.Currency) error {
	query := `INSERT INTO currencies (` + currencyColumns + `) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query,
		currency.Ticker, currency.Name, currency.NumberOfCoins, currency.MarketCap,
	)
	if err != nil {
		return fmt.Errorf("failed to create currency: %w", translateError(err))
	}
	return nil
}

func (r *PostgresCurrencyRepository) Update(ctx context.Context, ticker string, currency *model.Currency) error {
	query := `UPDATE currencies SET name = $2, number_of_coins = $3, market_cap = $4 WHERE ticker = $1`
	result, err := r.db.ExecContext(ctx, query,
		ticker, currency.Name, currency.NumberOfCoins, currency.MarketCap,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency: %w", err)
	}
	return requireAffected(result)
}

func (r *PostgresCurrencyRepository) Rename(ctx context.Context, oldTicker string, currency *model.Currency) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rename: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM currencies WHERE ticker = $1`, oldTicker)
	if err != nil {
		return fmt.Errorf("failed to delete renamed currency: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO currencies (`+currencyColumns+`) VALUES ($1, $2, $3, $4)`,
		currency.Ticker, currency.Name, currency.NumberOfCoins, currency.MarketCap,
	)
	if err != nil {
		return fmt.Errorf("failed to insert renamed currency: %w", translateError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rename: %w", err)
	}
	return nil
}

func (r *PostgresCurrencyRepository) Delete(ctx context.Context, ticker string) error {
	query := `DELETE FROM currencies WHERE ticker = $1`
	result, err := r.db.ExecContext(ctx, query, ticker)
	if err != nil {
		return fmt.Errorf("failed to delete currency: %w", err)
	}
	return requireAffected(result)
}

func (r *PostgresCurrencyRepository) FindPage(ctx context.Context, page model.PageRequest) ([]model.Currency, error) {
	// OrderBy only ever yields whitelisted columns.
	query := fmt.Sprintf(`SELECT %s FROM currencies ORDER BY %s LIMIT $1 OFFSET $2`,
		currencyColumns, page.Sort.OrderBy())

	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	currencies := make([]model.Currency, 0, page.Size)
	for rows.Next() {
		var currency model.Currency
		if err := rows.Scan(&currency.Ticker, &currency.Name, &currency.NumberOfCoins, &currency.MarketCap); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, currency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

func (r *PostgresCurrencyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM currencies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count currencies: %w", err)
	}
	return count, nil
}

func (r *PostgresCurrencyRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresCurrencyRepository) Close() error {
	return r.db.Close()
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrCurrencyNotFound
	}
	return nil
}

// translateError turns a primary key violation into ErrCurrencyAlreadyExists.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgerrcode.UniqueViolation {
		return model.ErrCurrencyAlreadyExists
	}
	return err
}
