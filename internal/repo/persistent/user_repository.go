package persistent

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByLogin(ctx context.Context, username, email string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	SetRefreshToken(ctx context.Context, id, token string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateDetails(ctx context.Context, id string, details entity.UserDetails) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, url string) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*entity.User, error)
	GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.Channel, error)
	AddToWatchHistory(ctx context.Context, userID, videoID string) error
	GetWatchHistory(ctx context.Context, userID string) ([]*entity.Video, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return translate(err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) FindByLogin(ctx context.Context, username, email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&userModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// SetRefreshToken stores token, or clears it when token is empty.
func (r *userRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	var value interface{}
	if token != "" {
		value = token
	}
	return r.updateColumn(ctx, id, "refresh_token", value)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateColumn(ctx, id, "password", passwordHash)
}

func (r *userRepository) UpdateDetails(ctx context.Context, id string, details entity.UserDetails) (*entity.User, error) {
	values := map[string]interface{}{}
	if details.Email != nil {
		values["email"] = *details.Email
	}
	if details.FullName != nil {
		values["full_name"] = *details.FullName
	}
	if len(values) == 0 {
		return r.GetByID(ctx, id)
	}
	return r.updateReturning(ctx, id, values)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, url string) (*entity.User, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{"avatar": url})
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, id, url string) (*entity.User, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{"cover_image": url})
}

const channelProfileQuery = `
SELECT u.id, u.username, u.full_name, u.avatar, u.cover_image,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS channel_subscribed_count,
	EXISTS (
		SELECT 1 FROM subscriptions s
		WHERE s.channel_id = u.id AND s.subscriber_id::text = @viewer
	) AS is_subscribed
FROM users u
WHERE u.username = @username`

func (r *userRepository) GetChannelProfile(ctx context.Context, username, viewerID string) (*entity.Channel, error) {
	var row model.ChannelRow
	res := r.db.WithContext(ctx).Raw(channelProfileQuery,
		map[string]interface{}{"viewer": viewerID, "username": username},
	).Scan(&row)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return ToChannelEntity(&row), nil
}

// AddToWatchHistory moves videoID to the end of the history, keeping each
// video at most once.
func (r *userRepository) AddToWatchHistory(ctx context.Context, userID, videoID string) error {
	return r.updateColumn(ctx, userID, "watch_history",
		gorm.Expr("array_append(array_remove(watch_history, ?::text), ?::text)", videoID, videoID))
}

// GetWatchHistory returns the most recently watched video first. Videos
// unpublished since are skipped unless the user owns them.
func (r *userRepository) GetWatchHistory(ctx context.Context, userID string) ([]*entity.Video, error) {
	var rows []model.VideoRow
	err := selectVideoRows(r.db.WithContext(ctx)).
		Joins("JOIN users viewer ON videos.id::text = ANY(viewer.watch_history)").
		Where("viewer.id = ?", userID).
		Where("(videos.is_published OR videos.owner_id = ?)", userID).
		Group("viewer.id").
		Order("array_position(viewer.watch_history, videos.id::text) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return ToVideoEntities(rows), nil
}

func (r *userRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) updateReturning(ctx context.Context, id string, values map[string]interface{}) (*entity.User, error) {
	var userModel model.UserModel
	res := r.db.WithContext(ctx).Model(&userModel).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return ToUserEntity(&userModel), nil
}
