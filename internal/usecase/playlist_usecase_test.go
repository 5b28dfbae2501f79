package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"videotube/internal/entity"
	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPlaylistUseCase() (PlaylistUseCase, *MockPlaylistRepository, *MockVideoRepository) {
	playlistRepo := new(MockPlaylistRepository)
	videoRepo := new(MockVideoRepository)
	return NewPlaylistUseCase(playlistRepo, videoRepo), playlistRepo, videoRepo
}

func TestAddVideos_DeduplicatesInput(t *testing.T) {
	uc, playlistRepo, videoRepo := newPlaylistUseCase()
	ctx := context.Background()

	playlistRepo.On("GetByID", ctx, "p1").Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1"}, nil)
	videoRepo.On("VisibleIDs", ctx, []string{"a", "b"}, "owner-1").Return([]string{"b", "a"}, nil)
	playlistRepo.On("AddVideos", ctx, "p1", []string{"a", "b"}).
		Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1", VideoIDs: []string{"a", "b"}}, nil)

	playlist, err := uc.AddVideos(ctx, "p1", "owner-1", []string{"a", "b", "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, playlist.VideoIDs)
	playlistRepo.AssertExpectations(t)
}

func TestAddVideos_UnknownVideo(t *testing.T) {
	uc, playlistRepo, videoRepo := newPlaylistUseCase()
	ctx := context.Background()

	playlistRepo.On("GetByID", ctx, "p1").Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1"}, nil)
	videoRepo.On("VisibleIDs", ctx, []string{"a", "z"}, "owner-1").Return([]string{"a"}, nil)

	_, err := uc.AddVideos(ctx, "p1", "owner-1", []string{"a", "z"})

	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
	playlistRepo.AssertNotCalled(t, "AddVideos", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddVideos_MixedCaseIdsCollapse(t *testing.T) {
	uc, playlistRepo, videoRepo := newPlaylistUseCase()
	ctx := context.Background()
	const id = "0b5e7c1a-3f2d-4c8e-9a61-7d2f4e8b1c90"

	playlistRepo.On("GetByID", ctx, "p1").Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1"}, nil)
	videoRepo.On("VisibleIDs", ctx, []string{id}, "owner-1").Return([]string{id}, nil)
	playlistRepo.On("AddVideos", ctx, "p1", []string{id}).
		Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1", VideoIDs: []string{id}}, nil)

	playlist, err := uc.AddVideos(ctx, "p1", "owner-1", []string{strings.ToUpper(id), id})

	require.NoError(t, err)
	assert.Equal(t, []string{id}, playlist.VideoIDs)
	videoRepo.AssertExpectations(t)
	playlistRepo.AssertExpectations(t)
}

func TestAddVideos_OtherUsersDraftIsMissing(t *testing.T) {
	uc, playlistRepo, videoRepo := newPlaylistUseCase()
	ctx := context.Background()

	playlistRepo.On("GetByID", ctx, "p1").Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1"}, nil)
	videoRepo.On("VisibleIDs", ctx, []string{"draft-of-bob"}, "owner-1").Return([]string{}, nil)

	_, err := uc.AddVideos(ctx, "p1", "owner-1", []string{"draft-of-bob"})

	require.Error(t, err)
	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "video not found", apperror.From(err).Message)
	playlistRepo.AssertNotCalled(t, "AddVideos", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddVideos_EmptyInput(t *testing.T) {
	uc, _, _ := newPlaylistUseCase()

	_, err := uc.AddVideos(context.Background(), "p1", "owner-1", nil)
	assert.True(t, apperror.IsStatus(err, http.StatusBadRequest))
}

func TestPlaylistMutations_NonOwnerForbidden(t *testing.T) {
	uc, playlistRepo, _ := newPlaylistUseCase()
	ctx := context.Background()
	name := "renamed"

	playlistRepo.On("GetByID", ctx, "p1").Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1"}, nil)

	_, err := uc.UpdatePlaylist(ctx, "p1", "intruder", entity.PlaylistUpdate{Name: &name})
	assert.True(t, apperror.IsStatus(err, http.StatusForbidden))

	_, err = uc.RemoveVideos(ctx, "p1", "intruder", []string{"A"})
	assert.True(t, apperror.IsStatus(err, http.StatusForbidden))

	_, err = uc.GetPlaylist(ctx, "p1", "intruder")
	assert.True(t, apperror.IsStatus(err, http.StatusForbidden))

	assert.True(t, apperror.IsStatus(uc.DeletePlaylist(ctx, "p1", "intruder"), http.StatusForbidden))

	playlistRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	playlistRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetPlaylist_Missing(t *testing.T) {
	uc, playlistRepo, _ := newPlaylistUseCase()
	ctx := context.Background()

	playlistRepo.On("GetByID", ctx, "p404").Return(nil, persistent.ErrNotFound)

	_, err := uc.GetPlaylist(ctx, "p404", "owner-1")
	assert.True(t, apperror.IsStatus(err, http.StatusNotFound))
}

func TestCreateAndRemove(t *testing.T) {
	uc, playlistRepo, _ := newPlaylistUseCase()
	ctx := context.Background()

	playlistRepo.On("Create", ctx, mock.AnythingOfType("*entity.Playlist")).Return(nil)
	playlist, err := uc.CreatePlaylist(ctx, "owner-1", " Mix ", "songs")
	require.NoError(t, err)
	assert.Equal(t, "Mix", playlist.Name)
	assert.Equal(t, "owner-1", playlist.OwnerID)

	playlistRepo.On("GetByID", ctx, "p1").Return(&entity.Playlist{ID: "p1", OwnerID: "owner-1"}, nil)
	playlistRepo.On("RemoveVideos", ctx, "p1", []string{"a"}).Return(&entity.Playlist{ID: "p1", VideoIDs: []string{"b"}}, nil)
	updated, err := uc.RemoveVideos(ctx, "p1", "owner-1", []string{"a", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, updated.VideoIDs)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{"ab"}, dedupe([]string{"AB", "ab", "aB"}))
	assert.Empty(t, dedupe(nil))
}
