package persistent

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByVideo(ctx context.Context, query entity.CommentQuery) ([]*entity.Comment, int64, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return translate(err)
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, query entity.CommentQuery) ([]*entity.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.CommentModel{}).
		Where("video_id = ?", query.VideoID).
		Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	if total == 0 {
		return []*entity.Comment{}, 0, nil
	}

	var rows []model.CommentRow
	err := r.db.WithContext(ctx).Table("comments").
		Select("comments.*, COUNT(likes.id) AS likes_count, "+
			"author.username AS owner_username, author.full_name AS owner_full_name, author.avatar AS owner_avatar").
		Joins("JOIN users author ON author.id = comments.owner_id").
		Joins("LEFT JOIN likes ON likes.comment_id = comments.id").
		Where("comments.video_id = ?", query.VideoID).
		Group("comments.id").
		Group("author.id").
		Order(clause.OrderByColumn{Column: clause.Column{Table: "comments", Name: "created_at"}, Desc: query.SortDesc}).
		Order("comments.id").
		Limit(query.Limit).
		Offset(query.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	comments := make([]*entity.Comment, len(rows))
	for i := range rows {
		comments[i] = ToCommentEntityFromRow(&rows[i])
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	res := r.db.WithContext(ctx).Model(&commentModel).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CommentModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
