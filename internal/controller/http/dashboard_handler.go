package http

import (
	"videotube/internal/usecase"
	"videotube/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUseCase usecase.DashboardUseCase
	healthUseCase    usecase.HealthUseCase
}

func NewDashboardHandler(dashboardUseCase usecase.DashboardUseCase, healthUseCase usecase.HealthUseCase) *DashboardHandler {
	return &DashboardHandler{dashboardUseCase: dashboardUseCase, healthUseCase: healthUseCase}
}

// ChannelStats godoc
// @Summary      Totals and daily subscriber gain for the caller's channel
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=entity.ChannelStats}
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) ChannelStats(c *gin.Context) {
	stats, err := h.dashboardUseCase.GetChannelStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Channel stats fetched successfully", stats)
}

// ChannelVideos godoc
// @Summary      All of the caller's videos with like counts
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]entity.Video}
// @Router       /dashboard/videos [get]
func (h *DashboardHandler) ChannelVideos(c *gin.Context) {
	videos, err := h.dashboardUseCase.GetChannelVideos(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Channel videos fetched successfully", videos)
}

// HealthCheck godoc
// @Summary      Liveness and database reachability
// @Tags         healthcheck
// @Produce      json
// @Success      200  {object}  response.Envelope{data=usecase.HealthStatus}
// @Failure      503  {object}  response.ErrorEnvelope
// @Router       /healthcheck [get]
func (h *DashboardHandler) HealthCheck(c *gin.Context) {
	status, err := h.healthUseCase.Check(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "OK", status)
}
