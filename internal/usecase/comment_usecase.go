package usecase

import (
	"context"
	"strings"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
)

type CommentUseCase interface {
	ListComments(ctx context.Context, query entity.CommentQuery) (*entity.CommentPage, error)
	AddComment(ctx context.Context, videoID, userID, content string) (*entity.Comment, error)
	UpdateComment(ctx context.Context, commentID, userID, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	videoRepo   persistent.VideoRepository
}

func NewCommentUseCase(commentRepo persistent.CommentRepository, videoRepo persistent.VideoRepository) CommentUseCase {
	return &commentUseCase{commentRepo: commentRepo, videoRepo: videoRepo}
}

func (uc *commentUseCase) ListComments(ctx context.Context, query entity.CommentQuery) (*entity.CommentPage, error) {
	if err := uc.checkVideo(ctx, query.VideoID, query.ViewerID); err != nil {
		return nil, err
	}

	comments, total, err := uc.commentRepo.ListByVideo(ctx, query)
	if err != nil {
		return nil, storeError(err, "comment")
	}
	return &entity.CommentPage{
		CurrentPage:   query.Page,
		Limit:         query.Limit,
		TotalPages:    query.TotalPages(total),
		TotalComments: total,
		Comments:      comments,
	}, nil
}

func (uc *commentUseCase) AddComment(ctx context.Context, videoID, userID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	if err := uc.checkVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{VideoID: videoID, OwnerID: userID, Content: content}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeError(err, "video")
	}
	return comment, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, commentID, userID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	if err := uc.authorize(ctx, commentID, userID); err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, storeError(err, "comment")
	}
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, commentID, userID string) error {
	if err := uc.authorize(ctx, commentID, userID); err != nil {
		return err
	}
	return storeError(uc.commentRepo.Delete(ctx, commentID), "comment")
}

func (uc *commentUseCase) authorize(ctx context.Context, commentID, userID string) error {
	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return storeError(err, "comment")
	}
	return requireOwner(comment.OwnerID, userID, "comment")
}

func (uc *commentUseCase) checkVideo(ctx context.Context, videoID, callerID string) error {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return storeError(err, "video")
	}
	return requireVisible(video, callerID)
}
