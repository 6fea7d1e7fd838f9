package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/service/wallet"
)

type mockWalletService struct {
	entry   *domain.WalletEntry
	entries []domain.WalletEntry
	total   int
	err     error

	lastReq wallet.AdjustRequest
}

func (m *mockWalletService) Adjust(_ context.Context, req wallet.AdjustRequest) (*domain.WalletEntry, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.entry, nil
}

func (m *mockWalletService) Entries(_ context.Context, _ uuid.UUID, _, _ int) ([]domain.WalletEntry, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.entries, m.total, nil
}

func doAdjust(t *testing.T, svc *mockWalletService, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/wallet/{id}/adjust", NewWalletHandler(svc).Adjust)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/wallet/%s/adjust", userID), strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWalletAdjust_Success(t *testing.T) {
	userID := uuid.New()
	svc := &mockWalletService{
		entry: &domain.WalletEntry{
			ID:            uuid.New(),
			UserID:        userID,
			Kind:          domain.AdjustmentCredit,
			Amount:        decimal.RequireFromString("25.50"),
			BalanceBefore: decimal.RequireFromString("50.00"),
			BalanceAfter:  decimal.RequireFromString("75.50"),
		},
	}

	rec := doAdjust(t, svc, userID.String(), `{"amount": 25.50, "type": "credit", "notes": "refund"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, userID.String(), data["user_id"])
	assert.Equal(t, "credit", data["type"])
	assert.Equal(t, "75.5", fmt.Sprint(data["new_balance"]))

	assert.Equal(t, userID, svc.lastReq.UserID)
	assert.Equal(t, domain.AdjustmentCredit, svc.lastReq.Kind)
	require.NotNil(t, svc.lastReq.Notes)
	assert.Equal(t, "refund", *svc.lastReq.Notes)
}

func TestWalletAdjust_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "negative amount", body: `{"amount": -5, "type": "credit"}`},
		{name: "zero amount", body: `{"amount": 0, "type": "debit"}`},
		{name: "missing type", body: `{"amount": 10}`},
		{name: "unknown type", body: `{"amount": 10, "type": "transfer"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockWalletService{}
			rec := doAdjust(t, svc, uuid.NewString(), tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
		})
	}
}

func TestWalletAdjust_MalformedBody(t *testing.T) {
	svc := &mockWalletService{}
	rec := doAdjust(t, svc, uuid.NewString(), `{"amount": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletAdjust_BadUserID(t *testing.T) {
	svc := &mockWalletService{}
	rec := doAdjust(t, svc, "not-a-uuid", `{"amount": 10, "type": "credit"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", resp.Error.Code)
}

func TestWalletAdjust_InsufficientBalance(t *testing.T) {
	svc := &mockWalletService{err: domain.ErrInsufficientBalance}
	rec := doAdjust(t, svc, uuid.NewString(), `{"amount": 100, "type": "debit"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_BALANCE", resp.Error.Code)
}

func TestWalletAdjust_CustomerNotFound(t *testing.T) {
	svc := &mockWalletService{err: domain.ErrCustomerNotFound}
	rec := doAdjust(t, svc, uuid.NewString(), `{"amount": 10, "type": "credit"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", resp.Error.Code)
}

func TestWalletListEntries(t *testing.T) {
	userID := uuid.New()
	svc := &mockWalletService{
		entries: []domain.WalletEntry{
			{ID: uuid.New(), UserID: userID, Kind: domain.AdjustmentCredit, Amount: decimal.RequireFromString("10.00")},
		},
		total: 5,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/wallet/{id}/entries", NewWalletHandler(svc).ListEntries)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/wallet/%s/entries?limit=1", userID), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(1), data["limit"])
}
