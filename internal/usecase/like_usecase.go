package usecase

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
)

type LikeUseCase interface {
	ToggleLike(ctx context.Context, userID string, target entity.LikeTarget, targetID string) (*entity.LikeToggle, error)
	GetLikedVideos(ctx context.Context, userID string) ([]*entity.Video, error)
}

type likeUseCase struct {
	likeRepo persistent.LikeRepository
}

func NewLikeUseCase(likeRepo persistent.LikeRepository) LikeUseCase {
	return &likeUseCase{likeRepo: likeRepo}
}

func (uc *likeUseCase) ToggleLike(ctx context.Context, userID string, target entity.LikeTarget, targetID string) (*entity.LikeToggle, error) {
	visible, err := uc.likeRepo.TargetVisible(ctx, target, targetID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !visible {
		return nil, apperror.NotFound(string(target) + " not found")
	}

	liked, err := uc.likeRepo.Toggle(ctx, userID, target, targetID)
	if err != nil {
		return nil, storeError(err, string(target))
	}
	return &entity.LikeToggle{IsLiked: liked}, nil
}

func (uc *likeUseCase) GetLikedVideos(ctx context.Context, userID string) ([]*entity.Video, error) {
	videos, err := uc.likeRepo.LikedVideos(ctx, userID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	return videos, nil
}
