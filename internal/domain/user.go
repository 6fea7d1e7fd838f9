package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User covers both admin operators and store customers; only customers
// carry a meaningful wallet balance.
type User struct {
	ID            uuid.UUID
	Username      string
	Email         string
	PasswordHash  string
	FullName      string
	PhoneNumber   *string
	Address       *string
	WalletBalance decimal.Decimal
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
