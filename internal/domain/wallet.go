package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdjustmentKind string

const (
	AdjustmentCredit AdjustmentKind = "credit"
	AdjustmentDebit  AdjustmentKind = "debit"
)

func (k AdjustmentKind) IsValid() bool {
	return k == AdjustmentCredit || k == AdjustmentDebit
}

// WalletEntry is the append-only record of a single balance adjustment,
// written in the same transaction as the balance update.
type WalletEntry struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Kind          AdjustmentKind
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Notes         *string
	CreatedAt     time.Time
}
