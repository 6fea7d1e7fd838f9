package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvgig/anvi-admin-api/internal/domain"
	"github.com/pvgig/anvi-admin-api/internal/logging"
)

type referralRepo interface {
	List(ctx context.Context) ([]domain.Referral, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Referral, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReferralStatus, bonusAmount *decimal.Decimal) error
}

type ReferralService struct {
	referrals referralRepo
}

func NewReferralService(referrals referralRepo) *ReferralService {
	return &ReferralService{referrals: referrals}
}

func (s *ReferralService) ListReferrals(ctx context.Context) ([]domain.Referral, error) {
	referrals, err := s.referrals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListReferrals: %w", err)
	}
	return referrals, nil
}

func (s *ReferralService) GetReferral(ctx context.Context, id uuid.UUID) (*domain.Referral, error) {
	ref, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("GetReferral: %w", domain.ErrReferralNotFound)
		}
		return nil, fmt.Errorf("GetReferral: %w", err)
	}
	return ref, nil
}

func (s *ReferralService) UpdateReferralStatus(ctx context.Context, id uuid.UUID, status domain.ReferralStatus, bonusAmount *decimal.Decimal) (*domain.Referral, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("UpdateReferralStatus: %w", domain.ErrInvalidStatus)
	}
	if bonusAmount != nil && bonusAmount.IsNegative() {
		return nil, fmt.Errorf("UpdateReferralStatus: %w", domain.ErrInvalidAmount)
	}

	if err := s.referrals.UpdateStatus(ctx, id, status, bonusAmount); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("UpdateReferralStatus: %w", domain.ErrReferralNotFound)
		}
		return nil, fmt.Errorf("UpdateReferralStatus: %w", err)
	}

	ref, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateReferralStatus: reload: %w", err)
	}

	logging.FromContext(ctx).Info("referral status updated", "referral_id", id, "status", status)
	return ref, nil
}
