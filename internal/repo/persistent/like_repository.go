package persistent

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	Toggle(ctx context.Context, userID string, target entity.LikeTarget, targetID string) (bool, error)
	TargetVisible(ctx context.Context, target entity.LikeTarget, targetID, viewerID string) (bool, error)
	LikedVideos(ctx context.Context, userID string) ([]*entity.Video, error)
}

var likeColumns = map[entity.LikeTarget]string{
	entity.LikeTargetVideo:   "video_id",
	entity.LikeTargetComment: "comment_id",
	entity.LikeTargetTweet:   "tweet_id",
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle removes the caller's like on the target if present and creates it
// otherwise. The unique index per target kind makes concurrent toggles safe.
func (r *likeRepository) Toggle(ctx context.Context, userID string, target entity.LikeTarget, targetID string) (bool, error) {
	column, ok := likeColumns[target]
	if !ok {
		return false, errors.Errorf("unknown like target %q", target)
	}

	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("liked_by = ?", userID).
			Where(clause.Eq{Column: clause.Column{Name: column}, Value: targetID}).
			Delete(&model.LikeModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &model.LikeModel{LikedBy: userID}
		id := targetID
		switch target {
		case entity.LikeTargetVideo:
			like.VideoID = &id
		case entity.LikeTargetComment:
			like.CommentID = &id
		case entity.LikeTargetTweet:
			like.TweetID = &id
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, translate(err)
	}
	return liked, nil
}

// TargetVisible reports whether the target exists and can be seen by the
// viewer. Drafts, and comments under drafts, are visible to the video owner
// only.
func (r *likeRepository) TargetVisible(ctx context.Context, target entity.LikeTarget, targetID, viewerID string) (bool, error) {
	db := r.db.WithContext(ctx)
	switch target {
	case entity.LikeTargetVideo:
		db = db.Model(&model.VideoModel{}).
			Where("id = ?", targetID).
			Where("(is_published OR owner_id = ?)", viewerID)
	case entity.LikeTargetComment:
		db = db.Model(&model.CommentModel{}).
			Joins("JOIN videos ON videos.id = comments.video_id").
			Where("comments.id = ?", targetID).
			Where("(videos.is_published OR videos.owner_id = ?)", viewerID)
	case entity.LikeTargetTweet:
		db = db.Model(&model.TweetModel{}).Where("id = ?", targetID)
	default:
		return false, errors.Errorf("unknown like target %q", target)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// LikedVideos lists the user's liked videos, newest like first. Videos that
// were unpublished since are left out unless the user owns them.
func (r *likeRepository) LikedVideos(ctx context.Context, userID string) ([]*entity.Video, error) {
	var rows []model.VideoRow
	err := selectVideoRows(r.db.WithContext(ctx)).
		Joins("JOIN likes mine ON mine.video_id = videos.id AND mine.liked_by = ?", userID).
		Where("(videos.is_published OR videos.owner_id = ?)", userID).
		Group("mine.id").
		Order("mine.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToVideoEntities(rows), nil
}
