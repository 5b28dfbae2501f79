package http

import (
	"videotube/internal/usecase"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUseCase: subscriptionUseCase}
}

// ToggleSubscription godoc
// @Summary      Subscribe to or unsubscribe from a channel
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        channelId path string true "Channel (user) id"
// @Success      200  {object}  response.Envelope{data=entity.SubscriptionToggle}
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /subscriptions/c/{channelId} [post]
func (h *SubscriptionHandler) ToggleSubscription(c *gin.Context) {
	channelID, ok := idParam(c, "channelId")
	if !ok {
		return
	}
	result, err := h.subscriptionUseCase.ToggleSubscription(c.Request.Context(), currentUserID(c), channelID)
	if err != nil {
		fail(c, err)
		return
	}

	message := "Unsubscribed successfully"
	if result.Subscribed {
		message = "Subscribed successfully"
	}
	response.OK(c, message, result)
}

// ChannelSubscribers godoc
// @Summary      Subscribers of a channel
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        channelId path string true "Channel (user) id"
// @Success      200  {object}  response.Envelope{data=[]entity.SubscriptionEntry}
// @Router       /subscriptions/c/{channelId} [get]
func (h *SubscriptionHandler) ChannelSubscribers(c *gin.Context) {
	channelID, ok := idParam(c, "channelId")
	if !ok {
		return
	}
	subscribers, err := h.subscriptionUseCase.GetSubscribers(c.Request.Context(), channelID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Subscribers fetched successfully", subscribers)
}

// SubscribedChannels godoc
// @Summary      Channels a user follows
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Param        subscriberId path string true "Subscriber (user) id"
// @Success      200  {object}  response.Envelope{data=[]entity.SubscriptionEntry}
// @Router       /subscriptions/u/{subscriberId} [get]
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, ok := idParam(c, "subscriberId")
	if !ok {
		return
	}
	channels, err := h.subscriptionUseCase.GetSubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Subscribed channels fetched successfully", channels)
}
