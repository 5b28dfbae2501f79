package usecase

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
)

type DashboardUseCase interface {
	GetChannelStats(ctx context.Context, ownerID string) (*entity.ChannelStats, error)
	GetChannelVideos(ctx context.Context, ownerID string) ([]*entity.Video, error)
}

type dashboardUseCase struct {
	dashboardRepo persistent.DashboardRepository
}

func NewDashboardUseCase(dashboardRepo persistent.DashboardRepository) DashboardUseCase {
	return &dashboardUseCase{dashboardRepo: dashboardRepo}
}

func (uc *dashboardUseCase) GetChannelStats(ctx context.Context, ownerID string) (*entity.ChannelStats, error) {
	stats, err := uc.dashboardRepo.Stats(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if stats.SubscriberGainedPerDay == nil {
		stats.SubscriberGainedPerDay = []entity.DailyCount{}
	}
	return stats, nil
}

func (uc *dashboardUseCase) GetChannelVideos(ctx context.Context, ownerID string) ([]*entity.Video, error) {
	videos, err := uc.dashboardRepo.ChannelVideos(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return videos, nil
}
