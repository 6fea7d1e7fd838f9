package wallet_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/service/wallet"
)

// Requests that fail validation are rejected before the service touches the
// database, so a service with no backing store is enough here.
func TestAdjust_Validation(t *testing.T) {
	svc := wallet.NewService(nil, nil)
	userID := uuid.New()

	tests := []struct {
		name    string
		req     wallet.AdjustRequest
		wantErr error
	}{
		{
			name: "missing customer id",
			req: wallet.AdjustRequest{
				UserID: uuid.Nil,
				Amount: decimal.RequireFromString("10.00"),
				Kind:   domain.AdjustmentCredit,
			},
			wantErr: domain.ErrMissingCustomer,
		},
		{
			name: "empty type",
			req: wallet.AdjustRequest{
				UserID: userID,
				Amount: decimal.RequireFromString("10.00"),
			},
			wantErr: domain.ErrInvalidKind,
		},
		{
			name: "unknown type",
			req: wallet.AdjustRequest{
				UserID: userID,
				Amount: decimal.RequireFromString("10.00"),
				Kind:   domain.AdjustmentKind("transfer"),
			},
			wantErr: domain.ErrInvalidKind,
		},
		{
			name: "zero amount",
			req: wallet.AdjustRequest{
				UserID: userID,
				Amount: decimal.Zero,
				Kind:   domain.AdjustmentCredit,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			req: wallet.AdjustRequest{
				UserID: userID,
				Amount: decimal.RequireFromString("-5.00"),
				Kind:   domain.AdjustmentDebit,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "more than two decimal places",
			req: wallet.AdjustRequest{
				UserID: userID,
				Amount: decimal.RequireFromString("10.005"),
				Kind:   domain.AdjustmentCredit,
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Adjust(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
