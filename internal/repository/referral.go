package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvgig/anvi-admin-api/internal/domain"
)

const referralColumns = `r.id, r.referral_code, r.referrer_user_id, r.referred_user_id,
	r.status, r.bonus_amount, r.created_at, r.updated_at,
	ru.username, ru.email, eu.username, eu.email`

const referralJoin = `FROM referrals r
	JOIN users ru ON r.referrer_user_id = ru.id
	JOIN users eu ON r.referred_user_id = eu.id`

type ReferralRepository struct {
	db *sql.DB
}

func NewReferralRepository(db *sql.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) List(ctx context.Context) ([]domain.Referral, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+referralColumns+` `+referralJoin+` ORDER BY r.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var referrals []domain.Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, fmt.Errorf("List: scan: %w", err)
		}
		referrals = append(referrals, *ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows: %w", err)
	}
	return referrals, nil
}

func (r *ReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Referral, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+referralColumns+` `+referralJoin+` WHERE r.id = $1`, id,
	)
	ref, err := scanReferral(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return ref, nil
}

// UpdateStatus changes the referral status; a nil bonusAmount leaves the
// existing bonus untouched.
func (r *ReferralRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReferralStatus, bonusAmount *decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE referrals
		SET status = $1, bonus_amount = COALESCE($2, bonus_amount), updated_at = NOW()
		WHERE id = $3`,
		status, bonusAmount, id,
	)
	if err != nil {
		return fmt.Errorf("UpdateStatus: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateStatus: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdateStatus: %w", domain.ErrNotFound)
	}
	return nil
}

func scanReferral(s scanner) (*domain.Referral, error) {
	var ref domain.Referral
	err := s.Scan(
		&ref.ID, &ref.Code, &ref.ReferrerUserID, &ref.ReferredUserID,
		&ref.Status, &ref.BonusAmount, &ref.CreatedAt, &ref.UpdatedAt,
		&ref.ReferrerUsername, &ref.ReferrerEmail,
		&ref.ReferredUsername, &ref.ReferredEmail,
	)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
