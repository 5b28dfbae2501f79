package http

import (
	"videotube/internal/entity"
	"videotube/internal/usecase"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase}
}

type ListCommentsQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1,max=1000000"`
	Limit    int    `form:"limit,default=10" binding:"min=1,max=100"`
	SortType string `form:"sortType,default=desc" binding:"oneof=asc desc"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// ListComments godoc
// @Summary      List comments on a video
// @Tags         comments
// @Produce      json
// @Param        videoId path string true "Video id"
// @Param        page query int false "Page, from 1" default(1) minimum(1) maximum(1000000)
// @Param        limit query int false "Page size" default(10) minimum(1) maximum(100)
// @Param        sortType query string false "Creation order" Enums(asc, desc)
// @Success      200  {object}  response.Envelope{data=entity.CommentPage}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /comments/{videoId} [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	videoID, ok := idParam(c, "videoId")
	if !ok {
		return
	}
	var q ListCommentsQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.commentUseCase.ListComments(c.Request.Context(), entity.CommentQuery{
		Pagination: entity.Pagination{Page: q.Page, Limit: q.Limit},
		VideoID:    videoID,
		ViewerID:   currentUserID(c),
		SortDesc:   q.SortType == "desc",
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Comments fetched successfully", page)
}

// AddComment godoc
// @Summary      Comment on a video
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        videoId path string true "Video id"
// @Param        request body CommentRequest true "Comment"
// @Success      201  {object}  response.Envelope{data=entity.Comment}
// @Router       /comments/{videoId} [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	videoID, ok := idParam(c, "videoId")
	if !ok {
		return
	}
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentUseCase.AddComment(c.Request.Context(), videoID, currentUserID(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, "Comment added successfully", comment)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        commentId path string true "Comment id"
// @Param        request body CommentRequest true "Comment"
// @Success      200  {object}  response.Envelope{data=entity.Comment}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /comments/c/{commentId} [patch]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := idParam(c, "commentId")
	if !ok {
		return
	}
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), commentID, currentUserID(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Comment updated successfully", comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        commentId path string true "Comment id"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /comments/c/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := idParam(c, "commentId")
	if !ok {
		return
	}
	if err := h.commentUseCase.DeleteComment(c.Request.Context(), commentID, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Comment deleted successfully", nil)
}
