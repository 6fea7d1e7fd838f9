package wallet_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/repository"
	"github.com/pvgig/anvi-admin-api/internal/service/wallet"
	"github.com/pvgig/anvi-admin-api/internal/testutil"
)

func setupWalletService(t *testing.T, db *sql.DB) *wallet.Service {
	t.Helper()
	return wallet.NewService(repository.NewWalletRepository(db), db)
}

func assertBalance(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	w := decimal.RequireFromString(want)
	assert.True(t, got.Equal(w), "want balance %s, got %s", w, got)
}

func TestAdjust_Credit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Ada Mensah", decimal.RequireFromString("50.00"))

	notes := "goodwill credit"
	entry, err := svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: customer.ID,
		Amount: decimal.RequireFromString("25.50"),
		Kind:   domain.AdjustmentCredit,
		Notes:  &notes,
	})

	require.NoError(t, err)
	assert.Equal(t, customer.ID, entry.UserID)
	assert.Equal(t, domain.AdjustmentCredit, entry.Kind)
	assertBalance(t, "50.00", entry.BalanceBefore)
	assertBalance(t, "75.50", entry.BalanceAfter)

	assertBalance(t, "75.50", testutil.GetWalletBalance(t, db, customer.ID))
	assert.Equal(t, 1, testutil.CountWalletEntries(t, db, customer.ID))
}

func TestAdjust_Debit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Kofi Boateng", decimal.RequireFromString("100.00"))

	entry, err := svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: customer.ID,
		Amount: decimal.RequireFromString("40.25"),
		Kind:   domain.AdjustmentDebit,
	})

	require.NoError(t, err)
	assertBalance(t, "100.00", entry.BalanceBefore)
	assertBalance(t, "59.75", entry.BalanceAfter)
	assertBalance(t, "59.75", testutil.GetWalletBalance(t, db, customer.ID))
}

func TestAdjust_DebitToExactlyZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Efua Owusu", decimal.RequireFromString("30.00"))

	entry, err := svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: customer.ID,
		Amount: decimal.RequireFromString("30.00"),
		Kind:   domain.AdjustmentDebit,
	})

	require.NoError(t, err)
	assertBalance(t, "0.00", entry.BalanceAfter)
	assertBalance(t, "0.00", testutil.GetWalletBalance(t, db, customer.ID))
}

func TestAdjust_InsufficientBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Yaw Darko", decimal.RequireFromString("10.00"))

	_, err := svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: customer.ID,
		Amount: decimal.RequireFromString("10.01"),
		Kind:   domain.AdjustmentDebit,
	})

	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assertBalance(t, "10.00", testutil.GetWalletBalance(t, db, customer.ID))
	assert.Equal(t, 0, testutil.CountWalletEntries(t, db, customer.ID))
}

func TestAdjust_CustomerNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	_, err := svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: uuid.New(),
		Amount: decimal.RequireFromString("5.00"),
		Kind:   domain.AdjustmentCredit,
	})

	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestAdjust_ConcurrentOverdraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Ama Asante", decimal.RequireFromString("100.00"))

	var wg sync.WaitGroup
	results := make(chan error, 2)

	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Adjust(ctx, wallet.AdjustRequest{
				UserID: customer.ID,
				Amount: decimal.RequireFromString("60.00"),
				Kind:   domain.AdjustmentDebit,
			})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
			failures++
		}
	}

	assert.Equal(t, 1, successes, "exactly one debit should succeed")
	assert.Equal(t, 1, failures, "exactly one debit should fail")

	assertBalance(t, "40.00", testutil.GetWalletBalance(t, db, customer.ID))
	assert.Equal(t, 1, testutil.CountWalletEntries(t, db, customer.ID))
}

func TestAdjust_CreditDebitLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Akosua Frimpong", decimal.RequireFromString("50.00"))

	_, err := svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: customer.ID,
		Amount: decimal.RequireFromString("25.50"),
		Kind:   domain.AdjustmentCredit,
	})
	require.NoError(t, err)
	assertBalance(t, "75.50", testutil.GetWalletBalance(t, db, customer.ID))

	_, err = svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: customer.ID,
		Amount: decimal.RequireFromString("75.50"),
		Kind:   domain.AdjustmentDebit,
	})
	require.NoError(t, err)
	assertBalance(t, "0.00", testutil.GetWalletBalance(t, db, customer.ID))

	_, err = svc.Adjust(ctx, wallet.AdjustRequest{
		UserID: customer.ID,
		Amount: decimal.RequireFromString("0.01"),
		Kind:   domain.AdjustmentDebit,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	assertBalance(t, "0.00", testutil.GetWalletBalance(t, db, customer.ID))
	assert.Equal(t, 2, testutil.CountWalletEntries(t, db, customer.ID))
}

func TestEntries_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupWalletService(t, db)
	ctx := context.Background()

	customer := testutil.SeedCustomer(t, db, "Kwame Appiah", decimal.RequireFromString("100.00"))

	for _, amount := range []string{"10.00", "20.00", "30.00"} {
		_, err := svc.Adjust(ctx, wallet.AdjustRequest{
			UserID: customer.ID,
			Amount: decimal.RequireFromString(amount),
			Kind:   domain.AdjustmentCredit,
		})
		require.NoError(t, err)
	}

	entries, total, err := svc.Entries(ctx, customer.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, entries, 2)

	rest, total, err := svc.Entries(ctx, customer.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, rest, 1)
}
