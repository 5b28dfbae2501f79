package http

import (
	"net/http"

	"videotube/internal/entity"
	"videotube/internal/usecase"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
}

func NewLikeHandler(likeUseCase usecase.LikeUseCase) *LikeHandler {
	return &LikeHandler{likeUseCase: likeUseCase}
}

// ToggleVideoLike godoc
// @Summary      Like or unlike a video
// @Tags         likes
// @Security     BearerAuth
// @Produce      json
// @Param        videoId path string true "Video id"
// @Success      201  {object}  response.Envelope{data=entity.LikeToggle}
// @Success      200  {object}  response.Envelope{data=entity.LikeToggle}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /likes/toggle/v/{videoId} [post]
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, entity.LikeTargetVideo, "videoId")
}

// ToggleCommentLike godoc
// @Summary      Like or unlike a comment
// @Tags         likes
// @Security     BearerAuth
// @Produce      json
// @Param        commentId path string true "Comment id"
// @Success      201  {object}  response.Envelope{data=entity.LikeToggle}
// @Success      200  {object}  response.Envelope{data=entity.LikeToggle}
// @Router       /likes/toggle/c/{commentId} [post]
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, entity.LikeTargetComment, "commentId")
}

// ToggleTweetLike godoc
// @Summary      Like or unlike a tweet
// @Tags         likes
// @Security     BearerAuth
// @Produce      json
// @Param        tweetId path string true "Tweet id"
// @Success      201  {object}  response.Envelope{data=entity.LikeToggle}
// @Success      200  {object}  response.Envelope{data=entity.LikeToggle}
// @Router       /likes/toggle/t/{tweetId} [post]
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, entity.LikeTargetTweet, "tweetId")
}

// A new like answers 201, a removed one 200.
func (h *LikeHandler) toggle(c *gin.Context, target entity.LikeTarget, param string) {
	targetID, ok := idParam(c, param)
	if !ok {
		return
	}

	result, err := h.likeUseCase.ToggleLike(c.Request.Context(), currentUserID(c), target, targetID)
	if err != nil {
		fail(c, err)
		return
	}
	if result.IsLiked {
		response.JSON(c, http.StatusCreated, "Liked "+string(target), result)
		return
	}
	response.JSON(c, http.StatusOK, "Unliked "+string(target), result)
}

// LikedVideos godoc
// @Summary      Videos the caller liked
// @Tags         likes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]entity.Video}
// @Router       /likes/videos [get]
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	videos, err := h.likeUseCase.GetLikedVideos(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Liked videos fetched successfully", videos)
}
