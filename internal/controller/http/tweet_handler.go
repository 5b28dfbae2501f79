package http

import (
	"videotube/internal/usecase"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetUseCase usecase.TweetUseCase
}

func NewTweetHandler(tweetUseCase usecase.TweetUseCase) *TweetHandler {
	return &TweetHandler{tweetUseCase: tweetUseCase}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required,min=1,max=280"`
}

// CreateTweet godoc
// @Summary      Post a tweet
// @Tags         tweets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body TweetRequest true "Tweet"
// @Success      201  {object}  response.Envelope{data=entity.Tweet}
// @Router       /tweets [post]
func (h *TweetHandler) CreateTweet(c *gin.Context) {
	var req TweetRequest
	if !bindJSON(c, &req) {
		return
	}
	tweet, err := h.tweetUseCase.CreateTweet(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, "Tweet created successfully", tweet)
}

// UserTweets godoc
// @Summary      Tweets of a user, newest first
// @Tags         tweets
// @Security     BearerAuth
// @Produce      json
// @Param        userId path string true "User id"
// @Success      200  {object}  response.Envelope{data=[]entity.Tweet}
// @Router       /tweets/user/{userId} [get]
func (h *TweetHandler) UserTweets(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	tweets, err := h.tweetUseCase.GetUserTweets(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Tweets fetched successfully", tweets)
}

// UpdateTweet godoc
// @Summary      Edit a tweet
// @Tags         tweets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        tweetId path string true "Tweet id"
// @Param        request body TweetRequest true "Tweet"
// @Success      200  {object}  response.Envelope{data=entity.Tweet}
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /tweets/{tweetId} [patch]
func (h *TweetHandler) UpdateTweet(c *gin.Context) {
	tweetID, ok := idParam(c, "tweetId")
	if !ok {
		return
	}
	var req TweetRequest
	if !bindJSON(c, &req) {
		return
	}
	tweet, err := h.tweetUseCase.UpdateTweet(c.Request.Context(), tweetID, currentUserID(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Tweet updated successfully", tweet)
}

// DeleteTweet godoc
// @Summary      Delete a tweet
// @Tags         tweets
// @Security     BearerAuth
// @Produce      json
// @Param        tweetId path string true "Tweet id"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.ErrorEnvelope
// @Router       /tweets/{tweetId} [delete]
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	tweetID, ok := idParam(c, "tweetId")
	if !ok {
		return
	}
	if err := h.tweetUseCase.DeleteTweet(c.Request.Context(), tweetID, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Tweet deleted successfully", nil)
}
