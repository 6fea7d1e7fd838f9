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

type customerService interface {
	ListCustomers(ctx context.Context) ([]domain.User, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.User, error)
	SearchCustomers(ctx context.Context, query string) ([]domain.User, error)
	CreateCustomer(ctx context.Context, req service.CreateCustomerRequest) (*domain.User, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req service.UpdateCustomerRequest) (*domain.User, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type CustomerHandler struct {
	customers customerService
}

func NewCustomerHandler(customers customerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type createCustomerRequest struct {
	FullName      string          `json:"full_name"`
	PhoneNumber   *string         `json:"phone_number"`
	Address       *string         `json:"address"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}

func (r createCustomerRequest) Validate() []FieldError {
	var errs []FieldError
	if r.FullName == "" {
		errs = append(errs, FieldError{Field: "full_name", Message: "required"})
	}
	if r.WalletBalance.IsNegative() {
		errs = append(errs, FieldError{Field: "wallet_balance", Message: "must not be negative"})
	}
	return errs
}

type updateCustomerRequest struct {
	FullName    string  `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

func (r updateCustomerRequest) Validate() []FieldError {
	var errs []FieldError
	if r.FullName == "" {
		errs = append(errs, FieldError{Field: "full_name", Message: "required"})
	}
	return errs
}

type customerDTO struct {
	ID            uuid.UUID       `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	FullName      string          `json:"full_name"`
	PhoneNumber   *string         `json:"phone_number"`
	Address       *string         `json:"address"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toCustomerDTO(u *domain.User) customerDTO {
	return customerDTO{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		PhoneNumber:   u.PhoneNumber,
		Address:       u.Address,
		WalletBalance: u.WalletBalance,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toCustomerDTOs(users []domain.User) []customerDTO {
	dtos := make([]customerDTO, len(users))
	for i := range users {
		dtos[i] = toCustomerDTO(&users[i])
	}
	return dtos
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.ListCustomers(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list customers", "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toCustomerDTOs(customers))
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrCustomerNotFound, nil)
		return
	}

	customer, err := h.customers.GetCustomer(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toCustomerDTO(customer))
}

func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		RespondValidationError(w, []FieldError{{Field: "query", Message: "required"}})
		return
	}

	customers, err := h.customers.SearchCustomers(r.Context(), query)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to search customers", "error", err)
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toCustomerDTOs(customers))
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	customer, err := h.customers.CreateCustomer(r.Context(), service.CreateCustomerRequest{
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		InitialBalance: req.WalletBalance,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create customer", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toCustomerDTO(customer))
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrCustomerNotFound, nil)
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	customer, err := h.customers.UpdateCustomer(r.Context(), id, service.UpdateCustomerRequest{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toCustomerDTO(customer))
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrCustomerNotFound, nil)
		return
	}

	if err := h.customers.DeleteCustomer(r.Context(), id); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
