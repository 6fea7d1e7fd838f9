package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/logging"
)

type customerRepo interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListCustomers(ctx context.Context) ([]domain.User, error)
	SearchCustomers(ctx context.Context, query string) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateCustomer(ctx context.Context, u *domain.User) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type CreateCustomerRequest struct {
	FullName       string
	PhoneNumber    *string
	Address        *string
	InitialBalance decimal.Decimal
}

type UpdateCustomerRequest struct {
	FullName    string
	PhoneNumber *string
	Address     *string
}

type CustomerService struct {
	customers customerRepo
}

func NewCustomerService(customers customerRepo) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.User, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListCustomers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	c, err := s.customers.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("GetCustomer: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("GetCustomer: %w", err)
	}
	return c, nil
}

func (s *CustomerService) SearchCustomers(ctx context.Context, query string) ([]domain.User, error) {
	customers, err := s.customers.SearchCustomers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("SearchCustomers: %w", err)
	}
	return customers, nil
}

// CreateCustomer derives username and a starter password from the full name;
// customers never log in through this API, the credentials exist so the row
// satisfies the same shape admins use.
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.User, error) {
	log := logging.FromContext(ctx)

	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("CreateCustomer: %w", domain.ErrInvalidAmount)
	}

	username := usernameFromFullName(req.FullName)
	hash, err := bcrypt.GenerateFromPassword([]byte(username+"123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("CreateCustomer: hash password: %w", err)
	}

	now := time.Now().UTC()
	customer := &domain.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         username + "@customers.anvimart.local",
		PasswordHash:  string(hash),
		FullName:      req.FullName,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		WalletBalance: req.InitialBalance,
		Role:          domain.RoleCustomer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("CreateCustomer: %w", err)
	}

	log.Info("customer created", "customer_id", customer.ID, "username", username)
	return customer, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*domain.User, error) {
	customer, err := s.customers.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("UpdateCustomer: %w", domain.ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("UpdateCustomer: %w", err)
	}

	customer.FullName = req.FullName
	customer.PhoneNumber = req.PhoneNumber
	customer.Address = req.Address

	if err := s.customers.UpdateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("UpdateCustomer: %w", err)
	}

	updated, err := s.customers.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateCustomer: reload: %w", err)
	}
	return updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.customers.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("DeleteCustomer: %w", domain.ErrCustomerNotFound)
		}
		return fmt.Errorf("DeleteCustomer: %w", err)
	}
	logging.FromContext(ctx).Info("customer deleted", "customer_id", id)
	return nil
}

func usernameFromFullName(fullName string) string {
	return strings.Join(strings.Fields(strings.ToLower(fullName)), "_")
}
