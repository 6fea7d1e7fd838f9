package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvgig/anvi-admin-api/internal/domain"
)

const walletEntryColumns = `id, user_id, kind, amount, balance_before, balance_after,
	notes, created_at`

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetBalanceForUpdate reads the customer's balance under a row lock so that
// concurrent adjustments on the same user serialize against each other.
func (r *WalletRepository) GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRowContext(ctx,
		`SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("GetBalanceForUpdate: %w", domain.ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("GetBalanceForUpdate: %w", err)
	}
	return balance, nil
}

func (r *WalletRepository) UpdateBalance(ctx context.Context, tx *sql.Tx, userID uuid.UUID, newBalance decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET wallet_balance = $1, updated_at = NOW() WHERE id = $2`,
		newBalance, userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateBalance: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateBalance: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdateBalance: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *WalletRepository) CreateEntry(ctx context.Context, tx *sql.Tx, entry *domain.WalletEntry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO wallet_entries (
			id, user_id, kind, amount, balance_before, balance_after,
			notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.Kind, entry.Amount,
		entry.BalanceBefore, entry.BalanceAfter, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateEntry: %w", err)
	}
	return nil
}

func (r *WalletRepository) EntriesByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.WalletEntry, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wallet_entries WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("EntriesByUserID: count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+walletEntryColumns+` FROM wallet_entries
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("EntriesByUserID: %w", err)
	}
	defer rows.Close()

	var entries []domain.WalletEntry
	for rows.Next() {
		e, err := scanWalletEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("EntriesByUserID: scan: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("EntriesByUserID: rows: %w", err)
	}
	return entries, total, nil
}

func scanWalletEntry(s scanner) (*domain.WalletEntry, error) {
	var e domain.WalletEntry
	err := s.Scan(
		&e.ID, &e.UserID, &e.Kind, &e.Amount,
		&e.BalanceBefore, &e.BalanceAfter, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
