package persistent

import (
	"context"
	"time"

	"videotube/internal/entity"
	"videotube/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	Stats(ctx context.Context, ownerID string) (*entity.ChannelStats, error)
	ChannelVideos(ctx context.Context, ownerID string) ([]*entity.Video, error)
}

const channelTotalsQuery = `
SELECT
	(SELECT COUNT(*) FROM videos WHERE owner_id = @owner) AS total_videos,
	(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = @owner) AS total_views,
	(SELECT COUNT(*) FROM subscriptions WHERE channel_id = @owner) AS total_subscribers,
	(SELECT COUNT(*) FROM likes JOIN videos ON videos.id = likes.video_id
		WHERE videos.owner_id = @owner) AS total_likes`

const subscriberGainQuery = `
SELECT DATE(created_at AT TIME ZONE 'UTC') AS day, COUNT(*) AS count
FROM subscriptions
WHERE channel_id = @owner
GROUP BY day
ORDER BY day`

type channelTotals struct {
	TotalVideos      int64
	TotalViews       int64
	TotalSubscribers int64
	TotalLikes       int64
}

type dailyRow struct {
	Day   time.Time
	Count int64
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Stats(ctx context.Context, ownerID string) (*entity.ChannelStats, error) {
	args := map[string]interface{}{"owner": ownerID}

	var totals channelTotals
	if err := r.db.WithContext(ctx).Raw(channelTotalsQuery, args).Scan(&totals).Error; err != nil {
		return nil, translate(err)
	}

	var days []dailyRow
	if err := r.db.WithContext(ctx).Raw(subscriberGainQuery, args).Scan(&days).Error; err != nil {
		return nil, translate(err)
	}

	gained := make([]entity.DailyCount, len(days))
	for i, d := range days {
		gained[i] = entity.DailyCount{Date: d.Day.Format("2006-01-02"), Count: d.Count}
	}

	return &entity.ChannelStats{
		TotalVideos:            totals.TotalVideos,
		TotalSubscribers:       totals.TotalSubscribers,
		TotalLikes:             totals.TotalLikes,
		TotalViews:             totals.TotalViews,
		SubscriberGainedPerDay: gained,
	}, nil
}

func (r *dashboardRepository) ChannelVideos(ctx context.Context, ownerID string) ([]*entity.Video, error) {
	var rows []model.VideoRow
	err := selectVideoRows(r.db.WithContext(ctx)).
		Where("videos.owner_id = ?", ownerID).
		Order("videos.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToVideoEntities(rows), nil
}
