package usecase

import (
	"context"
	"strings"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
)

type TweetUseCase interface {
	CreateTweet(ctx context.Context, ownerID, content string) (*entity.Tweet, error)
	GetUserTweets(ctx context.Context, userID string) ([]*entity.Tweet, error)
	UpdateTweet(ctx context.Context, tweetID, callerID, content string) (*entity.Tweet, error)
	DeleteTweet(ctx context.Context, tweetID, callerID string) error
}

type tweetUseCase struct {
	tweetRepo persistent.TweetRepository
	userRepo  persistent.UserRepository
}

func NewTweetUseCase(tweetRepo persistent.TweetRepository, userRepo persistent.UserRepository) TweetUseCase {
	return &tweetUseCase{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (uc *tweetUseCase) CreateTweet(ctx context.Context, ownerID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	tweet := &entity.Tweet{OwnerID: ownerID, Content: content}
	if err := uc.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, storeError(err, "user")
	}
	return tweet, nil
}

func (uc *tweetUseCase) GetUserTweets(ctx context.Context, userID string) ([]*entity.Tweet, error) {
	exists, err := uc.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.NotFound("user not found")
	}

	tweets, err := uc.tweetRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeError(err, "tweet")
	}
	return tweets, nil
}

func (uc *tweetUseCase) UpdateTweet(ctx context.Context, tweetID, callerID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	if err := uc.authorize(ctx, tweetID, callerID); err != nil {
		return nil, err
	}

	tweet, err := uc.tweetRepo.UpdateContent(ctx, tweetID, content)
	if err != nil {
		return nil, storeError(err, "tweet")
	}
	return tweet, nil
}

func (uc *tweetUseCase) DeleteTweet(ctx context.Context, tweetID, callerID string) error {
	if err := uc.authorize(ctx, tweetID, callerID); err != nil {
		return err
	}
	return storeError(uc.tweetRepo.Delete(ctx, tweetID), "tweet")
}

func (uc *tweetUseCase) authorize(ctx context.Context, tweetID, callerID string) error {
	tweet, err := uc.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return storeError(err, "tweet")
	}
	return requireOwner(tweet.OwnerID, callerID, "tweet")
}
