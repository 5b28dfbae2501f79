package persistent

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]*entity.SubscriptionEntry, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.SubscriptionEntry, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var subscribed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&model.SubscriptionModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}

		subscription := &model.SubscriptionModel{SubscriberID: subscriberID, ChannelID: channelID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(subscription).Error; err != nil {
			return err
		}
		subscribed = true
		return nil
	})
	if err != nil {
		return false, translate(err)
	}
	return subscribed, nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]*entity.SubscriptionEntry, error) {
	return r.list(ctx, "subscriber_id", "channel_id", channelID)
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.SubscriptionEntry, error) {
	return r.list(ctx, "channel_id", "subscriber_id", subscriberID)
}

// list returns the accounts on the join side of every subscription whose
// filter column equals id, newest first.
func (r *subscriptionRepository) list(ctx context.Context, joinColumn, filterColumn, id string) ([]*entity.SubscriptionEntry, error) {
	var rows []model.SubscriptionRow
	err := r.db.WithContext(ctx).Table("subscriptions").
		Select("users.id, users.username, users.full_name, users.avatar, users.email, subscriptions.created_at AS subscribed_at").
		Joins("JOIN users ON users.id = subscriptions." + joinColumn).
		Where(clause.Eq{Column: clause.Column{Table: "subscriptions", Name: filterColumn}, Value: id}).
		Order("subscriptions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToSubscriptionEntries(rows), nil
}
