package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/logging"
)

type orderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	Search(ctx context.Context, term string, userID *uuid.UUID, status *domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
}

type orderCustomerChecker interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type CreateOrderRequest struct {
	UserID          uuid.UUID
	TotalAmount     decimal.Decimal
	DeliveryAddress string
	PaymentMethod   *string
	Notes           string
	Status          domain.OrderStatus
}

type OrderService struct {
	orders    orderRepo
	customers orderCustomerChecker
}

func NewOrderService(orders orderRepo, customers orderCustomerChecker) *OrderService {
	return &OrderService{orders: orders, customers: customers}
}

func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	log := logging.FromContext(ctx)

	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("CreateOrder: %w", domain.ErrInvalidAmount)
	}

	if _, err := s.customers.GetCustomerByID(ctx, req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("CreateOrder: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("CreateOrder: %w", err)
	}

	status := req.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          req.UserID,
		TotalAmount:     req.TotalAmount,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		Status:          status,
		OrderDate:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("CreateOrder: %w", err)
	}

	log.Info("order created", "order_id", order.ID, "user_id", order.UserID, "total", order.TotalAmount)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("GetOrder: %w", domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("GetOrder: %w", err)
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ListOrders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ListOrdersByUser: %w", err)
	}
	return orders, nil
}

func (s *OrderService) SearchOrders(ctx context.Context, term string, userID *uuid.UUID, status *domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.orders.Search(ctx, term, userID, status)
	if err != nil {
		return nil, fmt.Errorf("SearchOrders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("UpdateOrderStatus: %w", domain.ErrInvalidStatus)
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("UpdateOrderStatus: %w", domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("UpdateOrderStatus: %w", err)
	}

	logging.FromContext(ctx).Info("order status updated", "order_id", id, "status", status)
	return order, nil
}
