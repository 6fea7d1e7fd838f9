package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/logging"
	"github.com/pvgig/anvi-admin-api/internal/service/wallet"
)

type walletService interface {
	Adjust(ctx context.Context, req wallet.AdjustRequest) (*domain.WalletEntry, error)
	Entries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.WalletEntry, int, error)
}

type WalletHandler struct {
	wallets walletService
}

func NewWalletHandler(wallets walletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

type adjustRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
	Notes  *string         `json:"notes"`
}

func (r adjustRequest) Validate() []FieldError {
	var errs []FieldError
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be a positive number"})
	}
	if r.Type == "" {
		errs = append(errs, FieldError{Field: "type", Message: "required"})
	} else if !domain.AdjustmentKind(r.Type).IsValid() {
		errs = append(errs, FieldError{Field: "type", Message: "must be credit or debit"})
	}
	return errs
}

type walletEntryDTO struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toWalletEntryDTO(e *domain.WalletEntry) walletEntryDTO {
	return walletEntryDTO{
		ID:            e.ID,
		UserID:        e.UserID,
		Type:          string(e.Kind),
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

type adjustResponse struct {
	UserID     uuid.UUID       `json:"user_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

func (h *WalletHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrCustomerNotFound, nil)
		return
	}

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	entry, err := h.wallets.Adjust(r.Context(), wallet.AdjustRequest{
		UserID: userID,
		Amount: req.Amount,
		Kind:   domain.AdjustmentKind(req.Type),
		Notes:  req.Notes,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to adjust wallet", "error", err, "user_id", userID)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, adjustResponse{
		UserID:     entry.UserID,
		Type:       string(entry.Kind),
		Amount:     entry.Amount,
		NewBalance: entry.BalanceAfter,
	})
}

type walletEntriesResponse struct {
	Entries []walletEntryDTO `json:"entries"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

func (h *WalletHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrCustomerNotFound, nil)
		return
	}

	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, total, err := h.wallets.Entries(r.Context(), userID, limit, offset)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list wallet entries", "error", err, "user_id", userID)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]walletEntryDTO, len(entries))
	for i := range entries {
		dtos[i] = toWalletEntryDTO(&entries[i])
	}

	RespondSuccess(w, http.StatusOK, walletEntriesResponse{
		Entries: dtos,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
