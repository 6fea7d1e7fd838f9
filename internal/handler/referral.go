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
)

type referralService interface {
	ListReferrals(ctx context.Context) ([]domain.Referral, error)
	GetReferral(ctx context.Context, id uuid.UUID) (*domain.Referral, error)
	UpdateReferralStatus(ctx context.Context, id uuid.UUID, status domain.ReferralStatus, bonusAmount *decimal.Decimal) (*domain.Referral, error)
}

type ReferralHandler struct {
	referrals referralService
}

func NewReferralHandler(referrals referralService) *ReferralHandler {
	return &ReferralHandler{referrals: referrals}
}

type updateReferralStatusRequest struct {
	Status      string           `json:"status"`
	BonusAmount *decimal.Decimal `json:"bonus_amount"`
}

func (r updateReferralStatusRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Status == "" {
		errs = append(errs, FieldError{Field: "status", Message: "required"})
	} else if !domain.ReferralStatus(r.Status).IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be pending, completed, or cancelled"})
	}
	if r.BonusAmount != nil && r.BonusAmount.IsNegative() {
		errs = append(errs, FieldError{Field: "bonus_amount", Message: "must not be negative"})
	}
	return errs
}

type referralDTO struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"referral_code"`
	Status           string          `json:"status"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`
	ReferrerUsername string          `json:"referrer_username"`
	ReferrerEmail    string          `json:"referrer_email"`
	ReferredUsername string          `json:"referred_username"`
	ReferredEmail    string          `json:"referred_email"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func toReferralDTO(ref *domain.Referral) referralDTO {
	return referralDTO{
		ID:               ref.ID,
		Code:             ref.Code,
		Status:           string(ref.Status),
		BonusAmount:      ref.BonusAmount,
		ReferrerUsername: ref.ReferrerUsername,
		ReferrerEmail:    ref.ReferrerEmail,
		ReferredUsername: ref.ReferredUsername,
		ReferredEmail:    ref.ReferredEmail,
		CreatedAt:        ref.CreatedAt,
		UpdatedAt:        ref.UpdatedAt,
	}
}

func (h *ReferralHandler) List(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.referrals.ListReferrals(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list referrals", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]referralDTO, len(referrals))
	for i := range referrals {
		dtos[i] = toReferralDTO(&referrals[i])
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *ReferralHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrReferralNotFound, nil)
		return
	}

	ref, err := h.referrals.GetReferral(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toReferralDTO(ref))
}

func (h *ReferralHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrReferralNotFound, nil)
		return
	}

	var req updateReferralStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	ref, err := h.referrals.UpdateReferralStatus(r.Context(), id, domain.ReferralStatus(req.Status), req.BonusAmount)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toReferralDTO(ref))
}
