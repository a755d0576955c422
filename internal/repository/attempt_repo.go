package repository

import (
	"context"

	"github.com/Gakenye8741/ticket-gateway/internal/models"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.BookingAttempt) error
	FindByID(ctx context.Context, id string) (*models.BookingAttempt, error)
	FindByNationalID(ctx context.Context, nationalID int64) ([]models.BookingAttempt, error)
	FindByState(ctx context.Context, state models.AttemptState) ([]models.BookingAttempt, error)
	// FindOrphans lists attempts where a booking was created but no payment
	// session followed.
	FindOrphans(ctx context.Context) ([]models.BookingAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.BookingAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) FindByID(ctx context.Context, id string) (*models.BookingAttempt, error) {
	var attempt models.BookingAttempt
	if err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByNationalID(ctx context.Context, nationalID int64) ([]models.BookingAttempt, error) {
	var attempts []models.BookingAttempt
	err := r.db.WithContext(ctx).
		Where("national_id = ?", nationalID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) FindByState(ctx context.Context, state models.AttemptState) ([]models.BookingAttempt, error) {
	var attempts []models.BookingAttempt
	err := r.db.WithContext(ctx).
		Where("state = ?", state).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) FindOrphans(ctx context.Context) ([]models.BookingAttempt, error) {
	return r.FindByState(ctx, models.AttemptOrphaned)
}
