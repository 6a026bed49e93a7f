package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"room-meeting-backend/internal/model"
)

// PaymentStore persists payments.
type PaymentStore interface {
	ListPayments(ctx context.Context) ([]model.Payment, error)
	ListPaymentsCreatedAfter(ctx context.Context, after time.Time) ([]model.Payment, error)
	GetPayment(ctx context.Context, id int64) (*model.Payment, error)
	CreatePayment(ctx context.Context, p *model.Payment) error
	SavePayment(ctx context.Context, p *model.Payment) error
	DeletePayment(ctx context.Context, id int64) error
}

func (s *gormStore) ListPayments(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	if err := s.conn(ctx).Order("id").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *gormStore) ListPaymentsCreatedAfter(ctx context.Context, after time.Time) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.conn(ctx).
		Where("created_at > ?", after).
		Order("created_at").
		Order("id").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments created after %s: %w", after, err)
	}
	return payments, nil
}

func (s *gormStore) GetPayment(ctx context.Context, id int64) (*model.Payment, error) {
	var p model.Payment
	if err := first(s.conn(ctx), &p, "payment", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) CreatePayment(ctx context.Context, p *model.Payment) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (s *gormStore) SavePayment(ctx context.Context, p *model.Payment) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("failed to save payment %d: %w", p.ID, err)
	}
	return nil
}

// DeletePayment unlinks the payment's reservations and removes it.
func (s *gormStore) DeletePayment(ctx context.Context, id int64) error {
	db := s.conn(ctx)
	if err := db.Model(&model.Reservation{}).Where("payment_id = ?", id).Update("payment_id", nil).Error; err != nil {
		return fmt.Errorf("failed to unlink reservations of payment %d: %w", id, err)
	}
	if err := db.Delete(&model.Payment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	return nil
}
