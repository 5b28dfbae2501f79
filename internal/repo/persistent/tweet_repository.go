package persistent

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *entity.Tweet) error
	GetByID(ctx context.Context, id string) (*entity.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Tweet, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Tweet, error)
	Delete(ctx context.Context, id string) error
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *entity.Tweet) error {
	tweetModel := ToTweetModel(tweet)
	if err := r.db.WithContext(ctx).Create(tweetModel).Error; err != nil {
		return translate(err)
	}
	*tweet = *ToTweetEntity(tweetModel)
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id string) (*entity.Tweet, error) {
	var tweetModel model.TweetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tweetModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToTweetEntity(&tweetModel), nil
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Tweet, error) {
	var rows []model.TweetRow
	err := r.db.WithContext(ctx).Table("tweets").
		Select("tweets.*, COUNT(likes.id) AS likes_count").
		Joins("LEFT JOIN likes ON likes.tweet_id = tweets.id").
		Where("tweets.owner_id = ?", ownerID).
		Group("tweets.id").
		Order("tweets.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	tweets := make([]*entity.Tweet, len(rows))
	for i := range rows {
		tweets[i] = ToTweetEntity(&rows[i].TweetModel)
		tweets[i].LikesCount = rows[i].LikesCount
	}
	return tweets, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Tweet, error) {
	var tweetModel model.TweetModel
	res := r.db.WithContext(ctx).Model(&tweetModel).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return ToTweetEntity(&tweetModel), nil
}

func (r *tweetRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TweetModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
