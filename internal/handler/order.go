package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/logging"
	"github.com/pvgig/anvi-admin-api/internal/service"
)

type orderService interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	SearchOrders(ctx context.Context, term string, userID *uuid.UUID, status *domain.OrderStatus) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
}

type OrderHandler struct {
	orders orderService
}

func NewOrderHandler(orders orderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	UserID          string          `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryAddress string          `json:"delivery_address"`
	PaymentMethod   *string         `json:"payment_method"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
}

func (r createOrderRequest) Validate() []FieldError {
	var errs []FieldError
	if r.UserID == "" {
		errs = append(errs, FieldError{Field: "user_id", Message: "required"})
	} else if _, err := uuid.Parse(r.UserID); err != nil {
		errs = append(errs, FieldError{Field: "user_id", Message: "must be a valid uuid"})
	}
	if !r.TotalAmount.IsPositive() {
		errs = append(errs, FieldError{Field: "total_amount", Message: "must be a positive number"})
	}
	if r.DeliveryAddress == "" {
		errs = append(errs, FieldError{Field: "delivery_address", Message: "required"})
	}
	return errs
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type orderDTO struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryAddress string          `json:"delivery_address"`
	PaymentMethod   *string         `json:"payment_method"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"order_date"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toOrderDTO(o *domain.Order) orderDTO {
	return orderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   o.PaymentMethod,
		Notes:           o.Notes,
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderDTOs(orders []domain.Order) []orderDTO {
	dtos := make([]orderDTO, len(orders))
	for i := range orders {
		dtos[i] = toOrderDTO(&orders[i])
	}
	return dtos
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	userID, _ := uuid.Parse(req.UserID)
	order, err := h.orders.CreateOrder(r.Context(), service.CreateOrderRequest{
		UserID:          userID,
		TotalAmount:     req.TotalAmount,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		Status:          domain.OrderStatus(req.Status),
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create order", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toOrderDTO(order))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fields := orderFilterFromQuery(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), filter)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list orders", "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toOrderDTOs(orders))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrOrderNotFound, nil)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toOrderDTO(order))
}

func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		RespondAppError(w, ErrCustomerNotFound, nil)
		return
	}

	orders, err := h.orders.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list orders by user", "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toOrderDTOs(orders))
}

func (h *OrderHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	if term == "" {
		RespondValidationError(w, []FieldError{{Field: "search", Message: "required"}})
		return
	}

	var userID *uuid.UUID
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondValidationError(w, []FieldError{{Field: "userId", Message: "must be a valid uuid"}})
			return
		}
		userID = &id
	}

	var status *domain.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.OrderStatus(raw)
		status = &s
	}

	orders, err := h.orders.SearchOrders(r.Context(), term, userID, status)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to search orders", "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toOrderDTOs(orders))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrOrderNotFound, nil)
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if req.Status == "" {
		RespondValidationError(w, []FieldError{{Field: "status", Message: "required"}})
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toOrderDTO(order))
}

func orderFilterFromQuery(r *http.Request) (domain.OrderFilter, []FieldError) {
	var (
		filter domain.OrderFilter
		fields []FieldError
	)

	q := r.URL.Query()
	if raw := q.Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "userId", Message: "must be a valid uuid"})
		} else {
			filter.UserID = &id
		}
	}
	if raw := q.Get("status"); raw != "" {
		s := domain.OrderStatus(raw)
		filter.Status = &s
	}
	if raw := q.Get("startDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "startDate", Message: "must be an RFC3339 timestamp"})
		} else {
			filter.StartDate = &t
		}
	}
	if raw := q.Get("endDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "endDate", Message: "must be an RFC3339 timestamp"})
		} else {
			filter.EndDate = &t
		}
	}

	return filter, fields
}
