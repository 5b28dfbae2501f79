package usecase

import (
	"context"
	"strings"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
)

type PlaylistUseCase interface {
	CreatePlaylist(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error)
	GetUserPlaylists(ctx context.Context, ownerID string) ([]*entity.Playlist, error)
	GetPlaylist(ctx context.Context, playlistID, callerID string) (*entity.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlistID, callerID string, update entity.PlaylistUpdate) (*entity.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID, callerID string) error
	AddVideos(ctx context.Context, playlistID, callerID string, videoIDs []string) (*entity.Playlist, error)
	RemoveVideos(ctx context.Context, playlistID, callerID string, videoIDs []string) (*entity.Playlist, error)
}

type playlistUseCase struct {
	playlistRepo persistent.PlaylistRepository
	videoRepo    persistent.VideoRepository
}

func NewPlaylistUseCase(playlistRepo persistent.PlaylistRepository, videoRepo persistent.VideoRepository) PlaylistUseCase {
	return &playlistUseCase{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (uc *playlistUseCase) CreatePlaylist(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error) {
	playlist := &entity.Playlist{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}
	if err := uc.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (uc *playlistUseCase) GetUserPlaylists(ctx context.Context, ownerID string) ([]*entity.Playlist, error) {
	playlists, err := uc.playlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlists, nil
}

func (uc *playlistUseCase) GetPlaylist(ctx context.Context, playlistID, callerID string) (*entity.Playlist, error) {
	if err := uc.authorize(ctx, playlistID, callerID); err != nil {
		return nil, err
	}
	playlist, err := uc.playlistRepo.GetWithVideos(ctx, playlistID)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (uc *playlistUseCase) UpdatePlaylist(ctx context.Context, playlistID, callerID string, update entity.PlaylistUpdate) (*entity.Playlist, error) {
	if err := uc.authorize(ctx, playlistID, callerID); err != nil {
		return nil, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		update.Description = &description
	}

	playlist, err := uc.playlistRepo.Update(ctx, playlistID, update)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (uc *playlistUseCase) DeletePlaylist(ctx context.Context, playlistID, callerID string) error {
	if err := uc.authorize(ctx, playlistID, callerID); err != nil {
		return err
	}
	return storeError(uc.playlistRepo.Delete(ctx, playlistID), "playlist")
}

// AddVideos appends every listed video that is not yet a member. Membership
// never holds duplicates, and another user's draft counts as missing.
func (uc *playlistUseCase) AddVideos(ctx context.Context, playlistID, callerID string, videoIDs []string) (*entity.Playlist, error) {
	videoIDs = dedupe(videoIDs)
	if len(videoIDs) == 0 {
		return nil, apperror.Validation("videoIds must not be empty")
	}
	if err := uc.authorize(ctx, playlistID, callerID); err != nil {
		return nil, err
	}

	found, err := uc.videoRepo.VisibleIDs(ctx, videoIDs, callerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(found) != len(videoIDs) {
		return nil, apperror.NotFound("video not found")
	}

	playlist, err := uc.playlistRepo.AddVideos(ctx, playlistID, videoIDs)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (uc *playlistUseCase) RemoveVideos(ctx context.Context, playlistID, callerID string, videoIDs []string) (*entity.Playlist, error) {
	videoIDs = dedupe(videoIDs)
	if len(videoIDs) == 0 {
		return nil, apperror.Validation("videoIds must not be empty")
	}
	if err := uc.authorize(ctx, playlistID, callerID); err != nil {
		return nil, err
	}

	playlist, err := uc.playlistRepo.RemoveVideos(ctx, playlistID, videoIDs)
	if err != nil {
		return nil, storeError(err, "playlist")
	}
	return playlist, nil
}

func (uc *playlistUseCase) authorize(ctx context.Context, playlistID, callerID string) error {
	playlist, err := uc.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return storeError(err, "playlist")
	}
	return requireOwner(playlist.OwnerID, callerID, "playlist")
}
