package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pvgig/anvi-admin-api/internal/domain"
)

const orderColumns = `id, user_id, total_amount, delivery_address, payment_method,
	notes, status, order_date, updated_at`

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (
			id, user_id, total_amount, delivery_address, payment_method,
			notes, status, order_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.UserID, o.TotalAmount, o.DeliveryAddress, o.PaymentMethod,
		o.Notes, o.Status, o.OrderDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		conditions []string
		args       []any
	)

	add := func(clause string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}

	if filter.UserID != nil {
		add("user_id = ", *filter.UserID)
	}
	if filter.Status != nil {
		add("status = ", *filter.Status)
	}
	if filter.StartDate != nil {
		add("order_date >= ", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("order_date <= ", *filter.EndDate)
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY order_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByUserID: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("ListByUserID: %w", err)
	}
	return orders, nil
}

// Search matches the term against order id, user id, delivery address,
// payment method, and status, optionally narrowed by user and status.
func (r *OrderRepository) Search(ctx context.Context, term string, userID *uuid.UUID, status *domain.OrderStatus) ([]domain.Order, error) {
	args := []any{"%" + term + "%"}
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE (
			CAST(id AS TEXT) LIKE $1 OR
			CAST(user_id AS TEXT) LIKE $1 OR
			delivery_address ILIKE $1 OR
			payment_method ILIKE $1 OR
			status ILIKE $1
		)`

	if userID != nil {
		args = append(args, *userID)
		query += " AND user_id = $" + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY order_date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+orderColumns,
		status, id,
	)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("UpdateStatus: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("UpdateStatus: %w", err)
	}
	return o, nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return orders, nil
}

func scanOrder(s scanner) (*domain.Order, error) {
	var o domain.Order
	err := s.Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.DeliveryAddress, &o.PaymentMethod,
		&o.Notes, &o.Status, &o.OrderDate, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
