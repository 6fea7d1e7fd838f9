package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
	ReferralStatusCancelled ReferralStatus = "cancelled"
)

func (s ReferralStatus) IsValid() bool {
	switch s {
	case ReferralStatusPending, ReferralStatusCompleted, ReferralStatusCancelled:
		return true
	}
	return false
}

// Referral carries denormalized referrer/referred user fields for the
// dashboard listing, joined at query time.
type Referral struct {
	ID               uuid.UUID
	Code             string
	ReferrerUserID   uuid.UUID
	ReferredUserID   uuid.UUID
	Status           ReferralStatus
	BonusAmount      decimal.Decimal
	ReferrerUsername string
	ReferrerEmail    string
	ReferredUsername string
	ReferredEmail    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
