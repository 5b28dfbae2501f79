package persistent

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/model"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	List(ctx context.Context, query entity.VideoQuery) ([]*entity.Video, int64, error)
	VisibleIDs(ctx context.Context, ids []string, viewerID string) ([]string, error)
	Update(ctx context.Context, id string, update entity.VideoUpdate) (*entity.Video, error)
	TogglePublished(ctx context.Context, id string) (*entity.Video, error)
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

var videoSortColumns = map[entity.VideoSortField]string{
	entity.SortByCreatedAt: "created_at",
	entity.SortByViews:     "views",
	entity.SortByDuration:  "duration",
}

// selectVideoRows selects videos with their like count and uploader profile.
func selectVideoRows(db *gorm.DB) *gorm.DB {
	return db.Table("videos").
		Select("videos.*, COUNT(likes.id) AS likes_count, " +
			"uploader.username AS owner_username, uploader.full_name AS owner_full_name, uploader.avatar AS owner_avatar").
		Joins("JOIN users uploader ON uploader.id = videos.owner_id").
		Joins("LEFT JOIN likes ON likes.video_id = videos.id").
		Group("videos.id").
		Group("uploader.id")
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	videoModel := ToVideoModel(video)
	if err := r.db.WithContext(ctx).Create(videoModel).Error; err != nil {
		return translate(err)
	}
	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	var row model.VideoRow
	res := selectVideoRows(r.db.WithContext(ctx)).Where("videos.id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return ToVideoEntityFromRow(&row), nil
}

func (r *videoRepository) List(ctx context.Context, query entity.VideoQuery) ([]*entity.Video, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if query.OwnerID != "" {
			db = db.Where("videos.owner_id = ?", query.OwnerID)
		}
		if query.Search != "" {
			db = db.Where("videos.title ILIKE ?", "%"+escapeLike(query.Search)+"%")
		}
		if query.ViewerID != "" {
			db = db.Where("(videos.is_published OR videos.owner_id = ?)", query.ViewerID)
		} else {
			db = db.Where("videos.is_published")
		}
		return db
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&model.VideoModel{})).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if total == 0 {
		return []*entity.Video{}, 0, nil
	}

	column, ok := videoSortColumns[query.SortBy]
	if !ok {
		column = videoSortColumns[entity.SortByCreatedAt]
	}

	var rows []model.VideoRow
	err := filter(selectVideoRows(r.db.WithContext(ctx))).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "videos", Name: column}, Desc: query.SortDesc}).
		Order("videos.id").
		Limit(query.Limit).
		Offset(query.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return ToVideoEntities(rows), total, nil
}

// VisibleIDs returns the subset of ids naming videos that are published or
// owned by the viewer.
func (r *videoRepository) VisibleIDs(ctx context.Context, ids []string, viewerID string) ([]string, error) {
	var found []string
	err := r.db.WithContext(ctx).Model(&model.VideoModel{}).
		Where("id::text = ANY(?::text[])", pq.StringArray(ids)).
		Where("(is_published OR owner_id = ?)", viewerID).
		Pluck("id", &found).Error
	if err != nil {
		return nil, translate(err)
	}
	return found, nil
}

func (r *videoRepository) Update(ctx context.Context, id string, update entity.VideoUpdate) (*entity.Video, error) {
	values := map[string]interface{}{}
	if update.Title != nil {
		values["title"] = *update.Title
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if update.Thumbnail != nil {
		values["thumbnail"] = *update.Thumbnail
	}
	if len(values) > 0 {
		res := r.db.WithContext(ctx).Model(&model.VideoModel{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *videoRepository) TogglePublished(ctx context.Context, id string) (*entity.Video, error) {
	res := r.db.WithContext(ctx).Model(&model.VideoModel{}).
		Where("id = ?", id).
		Update("is_published", gorm.Expr("NOT is_published"))
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Model(&model.VideoModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error)
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.VideoModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
