package http

import (
	"videotube/internal/entity"
	"videotube/internal/usecase"
	"videotube/pkg/apperror"
	"videotube/pkg/logger"
	"videotube/pkg/media"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{videoUseCase: videoUseCase, logger: logger}
}

type ListVideosQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1,max=1000000"`
	Limit    int    `form:"limit,default=10" binding:"min=1,max=100"`
	Query    string `form:"query" binding:"max=200"`
	SortBy   string `form:"sortBy,default=createdAt" binding:"oneof=createdAt views duration"`
	SortType string `form:"sortType,default=desc" binding:"oneof=asc desc"`
	UserID   string `form:"userId" binding:"omitempty,uuid"`
}

type PublishVideoRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"required,min=1,max=5000"`
}

type UpdateVideoRequest struct {
	Title       *string `form:"title" json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `form:"description" json:"description" binding:"omitempty,min=1,max=5000"`
}

// ListVideos godoc
// @Summary      List videos
// @Description  Published videos, plus the caller's own unpublished ones when signed in.
// @Tags         videos
// @Produce      json
// @Param        page query int false "Page, from 1" default(1) minimum(1) maximum(1000000)
// @Param        limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Param        query query string false "Case-insensitive title search"
// @Param        sortBy query string false "Sort field" Enums(createdAt, views, duration)
// @Param        sortType query string false "Sort direction" Enums(asc, desc)
// @Param        userId query string false "Owner id"
// @Success      200  {object}  response.Envelope{data=entity.VideoPage}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	var q ListVideosQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.videoUseCase.ListVideos(c.Request.Context(), entity.VideoQuery{
		Pagination: entity.Pagination{Page: q.Page, Limit: q.Limit},
		Search:     q.Query,
		OwnerID:    q.UserID,
		ViewerID:   currentUserID(c),
		SortBy:     entity.VideoSortField(q.SortBy),
		SortDesc:   q.SortType == "desc",
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Videos fetched successfully", page)
}

// PublishVideo godoc
// @Summary      Upload and publish a video
// @Tags         videos
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        title formData string true "Title"
// @Param        description formData string true "Description"
// @Param        videoFile formData file true "Video file"
// @Param        thumbnail formData file true "Thumbnail image"
// @Success      201  {object}  response.Envelope{data=entity.Video}
// @Failure      400  {object}  response.ErrorEnvelope
// @Router       /videos [post]
func (h *VideoHandler) PublishVideo(c *gin.Context) {
	var req PublishVideoRequest
	if !bind(c, &req) {
		return
	}
	videoFile, ok := typedFile(c, "videoFile", "a video", media.IsVideo)
	if !ok {
		return
	}
	thumbnail, ok := typedFile(c, "thumbnail", "an image", media.IsImage)
	if !ok {
		return
	}

	video, err := h.videoUseCase.PublishVideo(c.Request.Context(), currentUserID(c), usecase.PublishVideoInput{
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, "Video published successfully", video)
}

// GetVideo godoc
// @Summary      Get a video
// @Description  Counts a view and records it in the caller's watch history when signed in.
// @Tags         videos
// @Produce      json
// @Param        videoId path string true "Video id"
// @Success      200  {object}  response.Envelope{data=entity.Video}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /videos/{videoId} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, ok := idParam(c, "videoId")
	if !ok {
		return
	}
	video, err := h.videoUseCase.GetVideo(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Video fetched successfully", video)
}

// UpdateVideo godoc
// @Summary      Update title, description or thumbnail
// @Tags         videos
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        videoId path string true "Video id"
// @Param        title formData string false "Title"
// @Param        description formData string false "Description"
// @Param        thumbnail formData file false "Thumbnail image"
// @Success      200  {object}  response.Envelope{data=entity.Video}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /videos/{videoId} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := idParam(c, "videoId")
	if !ok {
		return
	}
	var req UpdateVideoRequest
	if !bind(c, &req) {
		return
	}
	thumbnail, ok := typedFile(c, "thumbnail", "an image", media.IsImage)
	if !ok {
		return
	}
	if req.Title == nil && req.Description == nil && thumbnail == nil {
		fail(c, apperror.Validation("title, description or thumbnail is required"))
		return
	}

	video, err := h.videoUseCase.UpdateVideo(c.Request.Context(), videoID, currentUserID(c), usecase.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Video updated successfully", video)
}

// DeleteVideo godoc
// @Summary      Delete a video and its media
// @Tags         videos
// @Security     BearerAuth
// @Produce      json
// @Param        videoId path string true "Video id"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /videos/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := idParam(c, "videoId")
	if !ok {
		return
	}
	if err := h.videoUseCase.DeleteVideo(c.Request.Context(), videoID, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Video deleted successfully", nil)
}

// TogglePublish godoc
// @Summary      Flip the publication flag
// @Tags         videos
// @Security     BearerAuth
// @Produce      json
// @Param        videoId path string true "Video id"
// @Success      200  {object}  response.Envelope{data=entity.Video}
// @Router       /videos/toggle/publish/{videoId} [patch]
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := idParam(c, "videoId")
	if !ok {
		return
	}
	video, err := h.videoUseCase.TogglePublish(c.Request.Context(), videoID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Video publish status toggled", video)
}
