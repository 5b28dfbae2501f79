package usecase

import (
	"context"
	"mime/multipart"
	"strings"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
	"videotube/pkg/logger"
	"videotube/pkg/media"

	"github.com/pkg/errors"
)

type PublishVideoInput struct {
	Title       string
	Description string
	VideoFile   *multipart.FileHeader
	Thumbnail   *multipart.FileHeader
}

type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *multipart.FileHeader
}

type VideoUseCase interface {
	ListVideos(ctx context.Context, query entity.VideoQuery) (*entity.VideoPage, error)
	PublishVideo(ctx context.Context, ownerID string, input PublishVideoInput) (*entity.Video, error)
	GetVideo(ctx context.Context, videoID, viewerID string) (*entity.Video, error)
	UpdateVideo(ctx context.Context, videoID, callerID string, input UpdateVideoInput) (*entity.Video, error)
	DeleteVideo(ctx context.Context, videoID, callerID string) error
	TogglePublish(ctx context.Context, videoID, callerID string) (*entity.Video, error)
}

type videoUseCase struct {
	videoRepo persistent.VideoRepository
	userRepo  persistent.UserRepository
	media     MediaService
	logger    *logger.Logger
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	userRepo persistent.UserRepository,
	media MediaService,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		media:     media,
		logger:    logger,
	}
}

func (uc *videoUseCase) ListVideos(ctx context.Context, query entity.VideoQuery) (*entity.VideoPage, error) {
	if query.OwnerID != "" {
		exists, err := uc.userRepo.Exists(ctx, query.OwnerID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if !exists {
			return nil, apperror.NotFound("user not found")
		}
	}

	videos, total, err := uc.videoRepo.List(ctx, query)
	if err != nil {
		return nil, storeError(err, "video")
	}
	return &entity.VideoPage{
		CurrentPage: query.Page,
		Limit:       query.Limit,
		TotalPages:  query.TotalPages(total),
		TotalVideos: total,
		Videos:      videos,
	}, nil
}

func (uc *videoUseCase) PublishVideo(ctx context.Context, ownerID string, input PublishVideoInput) (*entity.Video, error) {
	if input.VideoFile == nil {
		return nil, apperror.Validation("video file is required")
	}
	if input.Thumbnail == nil {
		return nil, apperror.Validation("thumbnail is required")
	}

	asset, err := uc.media.UploadVideo(ctx, input.VideoFile)
	if err != nil {
		return nil, apperror.Internal(errors.WithMessage(err, "upload video"))
	}
	thumbnailURL, err := uc.media.UploadImage(ctx, input.Thumbnail, media.FolderThumbnails)
	if err != nil {
		uc.media.DeleteRemote(asset.URL)
		return nil, apperror.Internal(errors.WithMessage(err, "upload thumbnail"))
	}

	video := &entity.Video{
		OwnerID:     ownerID,
		VideoFile:   asset.URL,
		Thumbnail:   thumbnailURL,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Duration:    asset.Duration,
		IsPublished: true,
	}
	if err := uc.videoRepo.Create(ctx, video); err != nil {
		uc.media.DeleteRemote(asset.URL)
		uc.media.DeleteRemote(thumbnailURL)
		return nil, storeError(err, "user")
	}

	uc.logger.Info("Video %s published by %s", video.ID, ownerID)
	return video, nil
}

// GetVideo counts a view and, for signed-in viewers, records the video in
// their watch history. Unpublished videos are only visible to their owner.
func (uc *videoUseCase) GetVideo(ctx context.Context, videoID, viewerID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	if err := requireVisible(video, viewerID); err != nil {
		return nil, err
	}

	if err := uc.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, storeError(err, "video")
	}
	video.Views++

	if viewerID != "" {
		if err := uc.userRepo.AddToWatchHistory(ctx, viewerID, videoID); err != nil {
			return nil, storeError(err, "user")
		}
	}
	return video, nil
}

func (uc *videoUseCase) UpdateVideo(ctx context.Context, videoID, callerID string, input UpdateVideoInput) (*entity.Video, error) {
	video, err := uc.ownedVideo(ctx, videoID, callerID)
	if err != nil {
		return nil, err
	}

	update := entity.VideoUpdate{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		update.Title = &title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		update.Description = &description
	}
	if input.Thumbnail != nil {
		url, err := uc.media.UploadImage(ctx, input.Thumbnail, media.FolderThumbnails)
		if err != nil {
			return nil, apperror.Internal(errors.WithMessage(err, "upload thumbnail"))
		}
		update.Thumbnail = &url
	}

	updated, err := uc.videoRepo.Update(ctx, videoID, update)
	if err != nil {
		if update.Thumbnail != nil {
			uc.media.DeleteRemote(*update.Thumbnail)
		}
		return nil, storeError(err, "video")
	}
	if update.Thumbnail != nil {
		uc.media.DeleteRemote(video.Thumbnail)
	}
	return updated, nil
}

func (uc *videoUseCase) DeleteVideo(ctx context.Context, videoID, callerID string) error {
	video, err := uc.ownedVideo(ctx, videoID, callerID)
	if err != nil {
		return err
	}
	if err := uc.videoRepo.Delete(ctx, videoID); err != nil {
		return storeError(err, "video")
	}

	uc.media.DeleteRemote(video.VideoFile)
	uc.media.DeleteRemote(video.Thumbnail)
	uc.logger.Info("Video %s deleted by %s", videoID, callerID)
	return nil
}

func (uc *videoUseCase) TogglePublish(ctx context.Context, videoID, callerID string) (*entity.Video, error) {
	if _, err := uc.ownedVideo(ctx, videoID, callerID); err != nil {
		return nil, err
	}
	video, err := uc.videoRepo.TogglePublished(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	return video, nil
}

func (uc *videoUseCase) ownedVideo(ctx context.Context, videoID, callerID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeError(err, "video")
	}
	if err := requireOwner(video.OwnerID, callerID, "video"); err != nil {
		return nil, err
	}
	return video, nil
}
