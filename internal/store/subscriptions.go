package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"room-meeting-backend/internal/model"
)

// SubscriptionStore persists browser push subscriptions per account.
type SubscriptionStore interface {
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	ListSubscriptions(ctx context.Context, kind model.AccountKind, accountID int64) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, kind model.AccountKind, accountID int64, endpoint string) (bool, error)
}

// UpsertSubscription stores sub, taking over the endpoint if another
// account registered it before.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "account_kind", "account_id"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (s *gormStore) ListSubscriptions(ctx context.Context, kind model.AccountKind, accountID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.conn(ctx).
		Where("account_kind = ? AND account_id = ?", kind, accountID).
		Order("created_at").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions of %s %d: %w", kind, accountID, err)
	}
	return subs, nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, kind model.AccountKind, accountID int64, endpoint string) (bool, error) {
	res := s.conn(ctx).
		Where("endpoint = ? AND account_kind = ? AND account_id = ?", endpoint, kind, accountID).
		Delete(&model.PushSubscription{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
