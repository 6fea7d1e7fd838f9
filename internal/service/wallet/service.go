// Package wallet owns the balance adjustment operation. Every mutation of a
// customer's wallet balance in the system goes through Adjust, which holds the
// invariant that a stored balance never goes negative and that concurrent
// adjustments on the same customer apply serially.
package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/logging"
)

type walletRepo interface {
	GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, tx *sql.Tx, userID uuid.UUID, newBalance decimal.Decimal) error
	CreateEntry(ctx context.Context, tx *sql.Tx, entry *domain.WalletEntry) error
	EntriesByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.WalletEntry, int, error)
}

type AdjustRequest struct {
	UserID uuid.UUID
	Amount decimal.Decimal
	Kind   domain.AdjustmentKind
	Notes  *string
}

type Service struct {
	wallets walletRepo
	db      *sql.DB
}

func NewService(wallets walletRepo, db *sql.DB) *Service {
	return &Service{wallets: wallets, db: db}
}

// Adjust applies a single credit or debit to the customer's wallet inside one
// transaction. The balance row is locked for the duration, so a concurrent
// debit cannot validate against a stale balance: of two racing debits, the
// second observes the first one's committed result before its own
// sufficiency check runs.
func (s *Service) Adjust(ctx context.Context, req AdjustRequest) (*domain.WalletEntry, error) {
	log := logging.FromContext(ctx)

	if err := validateAdjustment(req); err != nil {
		return nil, fmt.Errorf("Adjust: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Adjust: begin tx: %w", err)
	}
	defer tx.Rollback()

	balance, err := s.wallets.GetBalanceForUpdate(ctx, tx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("Adjust: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("Adjust: %w", err)
	}

	var newBalance decimal.Decimal
	switch req.Kind {
	case domain.AdjustmentCredit:
		newBalance = balance.Add(req.Amount)
	case domain.AdjustmentDebit:
		newBalance = balance.Sub(req.Amount)
		if newBalance.IsNegative() {
			return nil, fmt.Errorf("Adjust: %w", domain.ErrInsufficientBalance)
		}
	}

	if err := s.wallets.UpdateBalance(ctx, tx, req.UserID, newBalance); err != nil {
		return nil, fmt.Errorf("Adjust: update balance: %w", err)
	}

	entry := &domain.WalletEntry{
		ID:            uuid.New(),
		UserID:        req.UserID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		BalanceBefore: balance,
		BalanceAfter:  newBalance,
		Notes:         req.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.wallets.CreateEntry(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("Adjust: create entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Adjust: commit: %w", err)
	}

	log.Info("wallet adjusted",
		"user_id", req.UserID,
		"kind", req.Kind,
		"amount", req.Amount,
		"new_balance", newBalance,
	)

	return entry, nil
}

func (s *Service) Entries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.WalletEntry, int, error) {
	entries, total, err := s.wallets.EntriesByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("Entries: %w", err)
	}
	return entries, total, nil
}

// Preconditions run before any store access; a request that fails here never
// opens a transaction.
func validateAdjustment(req AdjustRequest) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("validateAdjustment: %w", domain.ErrMissingCustomer)
	}
	if !req.Kind.IsValid() {
		return fmt.Errorf("validateAdjustment: %w", domain.ErrInvalidKind)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("validateAdjustment: %w", domain.ErrInvalidAmount)
	}
	// Balances are stored with two fractional digits; finer amounts would
	// silently lose precision on write.
	if !req.Amount.Equal(req.Amount.Truncate(2)) {
		return fmt.Errorf("validateAdjustment: %w", domain.ErrInvalidAmount)
	}
	return nil
}
