package usecase

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
	"videotube/pkg/logger"
)

type SubscriptionUseCase interface {
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*entity.SubscriptionToggle, error)
	GetSubscribers(ctx context.Context, channelID string) ([]*entity.SubscriptionEntry, error)
	GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.SubscriptionEntry, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	userRepo         persistent.UserRepository
	logger           *logger.Logger
}

func NewSubscriptionUseCase(
	subscriptionRepo persistent.SubscriptionRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// ToggleSubscription allows subscribing to one's own channel.
func (uc *subscriptionUseCase) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (*entity.SubscriptionToggle, error) {
	if err := uc.requireUser(ctx, channelID, "channel"); err != nil {
		return nil, err
	}

	subscribed, err := uc.subscriptionRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, storeError(err, "channel")
	}
	uc.logger.With("channel_id", channelID).Debug("Subscription of %s set to %t", subscriberID, subscribed)
	return &entity.SubscriptionToggle{Subscribed: subscribed}, nil
}

func (uc *subscriptionUseCase) GetSubscribers(ctx context.Context, channelID string) ([]*entity.SubscriptionEntry, error) {
	if err := uc.requireUser(ctx, channelID, "channel"); err != nil {
		return nil, err
	}
	subscribers, err := uc.subscriptionRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, storeError(err, "channel")
	}
	return subscribers, nil
}

func (uc *subscriptionUseCase) GetSubscribedChannels(ctx context.Context, subscriberID string) ([]*entity.SubscriptionEntry, error) {
	if err := uc.requireUser(ctx, subscriberID, "subscriber"); err != nil {
		return nil, err
	}
	channels, err := uc.subscriptionRepo.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, storeError(err, "subscriber")
	}
	return channels, nil
}

func (uc *subscriptionUseCase) requireUser(ctx context.Context, id, resource string) error {
	exists, err := uc.userRepo.Exists(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !exists {
		return apperror.NotFound(resource + " not found")
	}
	return nil
}
