package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/repository"
	"github.com/pvgig/anvi-admin-api/internal/service"
	"github.com/pvgig/anvi-admin-api/internal/testutil"
)

func TestCustomerLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCustomerService(repository.NewUserRepository(db))
	ctx := context.Background()

	phone := "+233201234567"
	created, err := svc.CreateCustomer(ctx, service.CreateCustomerRequest{
		FullName:       "Nana Adjei Mensah",
		PhoneNumber:    &phone,
		InitialBalance: decimal.RequireFromString("20.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "nana_adjei_mensah", created.Username)
	assert.Equal(t, domain.RoleCustomer, created.Role)
	assert.True(t, created.WalletBalance.Equal(decimal.RequireFromString("20.00")))

	got, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Username, got.Username)

	addr := "45 Ring Road"
	updated, err := svc.UpdateCustomer(ctx, created.ID, service.UpdateCustomerRequest{
		FullName: "Nana Adjei Mensah",
		Address:  &addr,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Address)
	assert.Equal(t, addr, *updated.Address)

	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))

	_, err = svc.GetCustomer(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateCustomer_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCustomerService(repository.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, service.CreateCustomerRequest{FullName: "Esi Quartey"})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(ctx, service.CreateCustomerRequest{FullName: "esi quartey"})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestCreateCustomer_NegativeInitialBalance(t *testing.T) {
	svc := service.NewCustomerService(nil)

	_, err := svc.CreateCustomer(context.Background(), service.CreateCustomerRequest{
		FullName:       "Broke Start",
		InitialBalance: decimal.RequireFromString("-1.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGetCustomer_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCustomerService(repository.NewUserRepository(db))

	_, err := svc.GetCustomer(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestSearchCustomers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCustomerService(repository.NewUserRepository(db))
	ctx := context.Background()

	testutil.SeedCustomer(t, db, "Abena Sarpong", decimal.Zero)
	testutil.SeedCustomer(t, db, "Kojo Antwi", decimal.Zero)
	testutil.SeedAdmin(t, db, "sarpong_admin", "secret")

	results, err := svc.SearchCustomers(ctx, "sarpong")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Abena Sarpong", results[0].FullName)
	assert.Equal(t, domain.RoleCustomer, results[0].Role)
}
