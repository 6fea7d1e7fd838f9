package testutil

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/pvgig/anvi-admin-api/internal/domain"
)

func SeedAdmin(t *testing.T, db *sql.DB, username, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         username + "@anvimart.local",
		PasswordHash:  string(hash),
		FullName:      "Admin " + username,
		WalletBalance: decimal.Zero,
		Role:          domain.RoleAdmin,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, username, email, password_hash, full_name, wallet_balance, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.WalletBalance, u.Role, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed admin %s: %v", username, err)
	}
	return u
}

func SeedCustomer(t *testing.T, db *sql.DB, fullName string, balance decimal.Decimal) *domain.User {
	t.Helper()

	username := strings.Join(strings.Fields(strings.ToLower(fullName)), "_")
	hash, err := bcrypt.GenerateFromPassword([]byte(username+"123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         username + "@customers.anvimart.local",
		PasswordHash:  string(hash),
		FullName:      fullName,
		WalletBalance: balance,
		Role:          domain.RoleCustomer,
		CreatedAt:     time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, username, email, password_hash, full_name, wallet_balance, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.WalletBalance, u.Role, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed customer %s: %v", fullName, err)
	}
	return u
}

func SeedOrder(t *testing.T, db *sql.DB, userID uuid.UUID, total decimal.Decimal, status domain.OrderStatus) *domain.Order {
	t.Helper()

	o := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		TotalAmount:     total,
		DeliveryAddress: "12 Test Street",
		Status:          status,
		OrderDate:       time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO orders (id, user_id, total_amount, delivery_address, status, order_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.UserID, o.TotalAmount, o.DeliveryAddress, o.Status, o.OrderDate,
	)
	if err != nil {
		t.Fatalf("seed order for %s: %v", userID, err)
	}
	return o
}

func SeedReferral(t *testing.T, db *sql.DB, referrerID, referredID uuid.UUID, code string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO referrals (id, referral_code, referrer_user_id, referred_user_id, status)
		 VALUES ($1, $2, $3, $4, 'pending')`,
		id, code, referrerID, referredID,
	)
	if err != nil {
		t.Fatalf("seed referral %s: %v", code, err)
	}
	return id
}

func GetWalletBalance(t *testing.T, db *sql.DB, userID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT wallet_balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		t.Fatalf("get wallet balance %s: %v", userID, err)
	}
	return balance
}

func CountWalletEntries(t *testing.T, db *sql.DB, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM wallet_entries WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		t.Fatalf("count wallet entries for %s: %v", userID, err)
	}
	return count
}
