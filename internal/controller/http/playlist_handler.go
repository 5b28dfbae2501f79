package http

import (
	"videotube/internal/entity"
	"videotube/internal/usecase"
	"videotube/pkg/apperror"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistUseCase usecase.PlaylistUseCase
}

func NewPlaylistHandler(playlistUseCase usecase.PlaylistUseCase) *PlaylistHandler {
	return &PlaylistHandler{playlistUseCase: playlistUseCase}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=1,max=500"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1,max=500"`
}

type PlaylistVideosRequest struct {
	VideoIDs []string `json:"videoIds" binding:"required,min=1,max=100,dive,uuid"`
}

// CreatePlaylist godoc
// @Summary      Create a playlist
// @Tags         playlists
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body CreatePlaylistRequest true "Playlist"
// @Success      201  {object}  response.Envelope{data=entity.Playlist}
// @Router       /playlists [post]
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if !bindJSON(c, &req) {
		return
	}
	playlist, err := h.playlistUseCase.CreatePlaylist(c.Request.Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, "Playlist created successfully", playlist)
}

// UserPlaylists godoc
// @Summary      The caller's playlists
// @Tags         playlists
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]entity.Playlist}
// @Router       /playlists/user/playlist [get]
func (h *PlaylistHandler) UserPlaylists(c *gin.Context) {
	playlists, err := h.playlistUseCase.GetUserPlaylists(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Playlists fetched successfully", playlists)
}

// GetPlaylist godoc
// @Summary      A playlist with its videos
// @Tags         playlists
// @Security     BearerAuth
// @Produce      json
// @Param        playlistId path string true "Playlist id"
// @Success      200  {object}  response.Envelope{data=entity.Playlist}
// @Failure      403  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /playlists/{playlistId} [get]
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	playlistID, ok := idParam(c, "playlistId")
	if !ok {
		return
	}
	playlist, err := h.playlistUseCase.GetPlaylist(c.Request.Context(), playlistID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Playlist fetched successfully", playlist)
}

// UpdatePlaylist godoc
// @Summary      Rename or redescribe a playlist
// @Tags         playlists
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        playlistId path string true "Playlist id"
// @Param        request body UpdatePlaylistRequest true "Fields to change"
// @Success      200  {object}  response.Envelope{data=entity.Playlist}
// @Router       /playlists/{playlistId} [patch]
func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	playlistID, ok := idParam(c, "playlistId")
	if !ok {
		return
	}
	var req UpdatePlaylistRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil && req.Description == nil {
		fail(c, apperror.Validation("name or description is required"))
		return
	}

	playlist, err := h.playlistUseCase.UpdatePlaylist(c.Request.Context(), playlistID, currentUserID(c), entity.PlaylistUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Playlist updated successfully", playlist)
}

// DeletePlaylist godoc
// @Summary      Delete a playlist
// @Tags         playlists
// @Security     BearerAuth
// @Produce      json
// @Param        playlistId path string true "Playlist id"
// @Success      200  {object}  response.Envelope
// @Router       /playlists/{playlistId} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	playlistID, ok := idParam(c, "playlistId")
	if !ok {
		return
	}
	if err := h.playlistUseCase.DeletePlaylist(c.Request.Context(), playlistID, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Playlist deleted successfully", nil)
}

// AddVideos godoc
// @Summary      Add videos to a playlist
// @Description  Ids already in the playlist are ignored.
// @Tags         playlists
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        playlistId path string true "Playlist id"
// @Param        request body PlaylistVideosRequest true "Video ids"
// @Success      200  {object}  response.Envelope{data=entity.Playlist}
// @Router       /playlists/add/{playlistId} [patch]
func (h *PlaylistHandler) AddVideos(c *gin.Context) {
	playlistID, ok := idParam(c, "playlistId")
	if !ok {
		return
	}
	var req PlaylistVideosRequest
	if !bindJSON(c, &req) {
		return
	}
	playlist, err := h.playlistUseCase.AddVideos(c.Request.Context(), playlistID, currentUserID(c), req.VideoIDs)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Videos added to playlist", playlist)
}

// RemoveVideos godoc
// @Summary      Remove videos from a playlist
// @Tags         playlists
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        playlistId path string true "Playlist id"
// @Param        request body PlaylistVideosRequest true "Video ids"
// @Success      200  {object}  response.Envelope{data=entity.Playlist}
// @Router       /playlists/remove/{playlistId} [patch]
func (h *PlaylistHandler) RemoveVideos(c *gin.Context) {
	playlistID, ok := idParam(c, "playlistId")
	if !ok {
		return
	}
	var req PlaylistVideosRequest
	if !bindJSON(c, &req) {
		return
	}
	playlist, err := h.playlistUseCase.RemoveVideos(c.Request.Context(), playlistID, currentUserID(c), req.VideoIDs)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Videos removed from playlist", playlist)
}
