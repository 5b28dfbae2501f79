package persistent

import (
	"context"

	"videotube/internal/entity"
	"videotube/internal/model"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *entity.Playlist) error
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	GetWithVideos(ctx context.Context, id string) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Playlist, error)
	Update(ctx context.Context, id string, update entity.PlaylistUpdate) (*entity.Playlist, error)
	Delete(ctx context.Context, id string) error
	AddVideos(ctx context.Context, id string, videoIDs []string) (*entity.Playlist, error)
	RemoveVideos(ctx context.Context, id string, videoIDs []string) (*entity.Playlist, error)
}

// Members already present are skipped and the rest keep their first
// position in the argument.
const appendMissingVideos = `videos || ARRAY(
	SELECT v FROM unnest(?::text[]) WITH ORDINALITY AS t(v, ord)
	WHERE NOT (v = ANY(videos))
	GROUP BY v ORDER BY MIN(ord))`

const removeVideos = `ARRAY(
	SELECT v FROM unnest(videos) WITH ORDINALITY AS t(v, ord)
	WHERE NOT (v = ANY(?::text[]))
	ORDER BY ord)`

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	playlistModel := ToPlaylistModel(playlist)
	if err := r.db.WithContext(ctx).Create(playlistModel).Error; err != nil {
		return translate(err)
	}
	*playlist = *ToPlaylistEntity(playlistModel)
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	var playlistModel model.PlaylistModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlistModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToPlaylistEntity(&playlistModel), nil
}

// GetWithVideos resolves membership into videos in playlist order. Members
// whose video was deleted, or unpublished by someone other than the playlist
// owner, are dropped from the result.
func (r *playlistRepository) GetWithVideos(ctx context.Context, id string) (*entity.Playlist, error) {
	playlist, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(playlist.VideoIDs) == 0 {
		playlist.Videos = []*entity.Video{}
		return playlist, nil
	}

	ids := pq.StringArray(playlist.VideoIDs)
	var rows []model.VideoRow
	err = selectVideoRows(r.db.WithContext(ctx)).
		Where("videos.id::text = ANY(?::text[])", ids).
		Where("(videos.is_published OR videos.owner_id = ?)", playlist.OwnerID).
		Order(gorm.Expr("array_position(?::text[], videos.id::text)", ids)).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	playlist.Videos = ToVideoEntities(rows)
	return playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Playlist, error) {
	var models []model.PlaylistModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}

	playlists := make([]*entity.Playlist, len(models))
	for i := range models {
		playlists[i] = ToPlaylistEntity(&models[i])
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, id string, update entity.PlaylistUpdate) (*entity.Playlist, error) {
	values := map[string]interface{}{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if len(values) == 0 {
		return r.GetByID(ctx, id)
	}
	return r.updateReturning(ctx, id, values)
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PlaylistModel{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *playlistRepository) AddVideos(ctx context.Context, id string, videoIDs []string) (*entity.Playlist, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{
		"videos": gorm.Expr(appendMissingVideos, pq.StringArray(videoIDs)),
	})
}

func (r *playlistRepository) RemoveVideos(ctx context.Context, id string, videoIDs []string) (*entity.Playlist, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{
		"videos": gorm.Expr(removeVideos, pq.StringArray(videoIDs)),
	})
}

func (r *playlistRepository) updateReturning(ctx context.Context, id string, values map[string]interface{}) (*entity.Playlist, error) {
	var playlistModel model.PlaylistModel
	res := r.db.WithContext(ctx).Model(&playlistModel).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return ToPlaylistEntity(&playlistModel), nil
}
