package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/profitpulse/profitpulse-api/internal/domain/settings"
	"github.com/profitpulse/profitpulse-api/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// GetAll implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetAll(ctx context.Context) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key, value FROM financial_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial config: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan financial config: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate financial config: %w", err)
	}

	return values, nil
}

// GetRBACOverrides implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) GetRBACOverrides(ctx context.Context) (string, error) {
	q := GetQuerier(ctx, r.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM financial_config WHERE key = $1`, settings.KeyRBACOverrides).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get rbac overrides: %w", err)
	}

	return value, nil
}

// Upsert implements settings.SettingsRepository. All keys are written in one transaction.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := WithTx(ctx, tx)
		for key, value := range values {
			if err := r.upsertOne(txCtx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *settingsRepositoryImpl) upsertOne(ctx context.Context, key, value string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO financial_config (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", key, err)
	}
	return nil
}
