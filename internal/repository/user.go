package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pvgig/anvi-admin-api/internal/domain"
)

const userColumns = `id, username, email, password_hash, full_name, phone_number,
	address, wallet_balance, role, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetAdminByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 AND role = 'admin'`, username,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetAdminByUsername: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetAdminByUsername: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND role = 'customer'`, id,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetCustomerByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetCustomerByID: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ListCustomers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'customer' ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCustomers: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("ListCustomers: %w", err)
	}
	return users, nil
}

func (r *UserRepository) SearchCustomers(ctx context.Context, query string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		WHERE role = 'customer' AND (full_name ILIKE $1 OR phone_number ILIKE $1)
		ORDER BY full_name`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("SearchCustomers: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("SearchCustomers: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (
			id, username, email, password_hash, full_name, phone_number,
			address, wallet_balance, role, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.PhoneNumber,
		u.Address, u.WalletBalance, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("Create: %w", domain.ErrUsernameTaken)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateCustomer(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		SET full_name = $1, phone_number = $2, address = $3, updated_at = NOW()
		WHERE id = $4 AND role = 'customer'`,
		u.FullName, u.PhoneNumber, u.Address, u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateCustomer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateCustomer: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdateCustomer: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1 AND role = 'customer'`, id,
	)
	if err != nil {
		return fmt.Errorf("DeleteCustomer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteCustomer: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("DeleteCustomer: %w", domain.ErrNotFound)
	}
	return nil
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return users, nil
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	err := s.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.PhoneNumber, &u.Address, &u.WalletBalance, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
