package handler

import (
	"github.com/gin-gonic/gin"

	appstats "github.com/xiebiao/library/internal/application/stats"
	"github.com/xiebiao/library/pkg/response"
)

// StatsHandler 运营统计HTTP处理器
type StatsHandler struct {
	dashboardUseCase *appstats.DashboardUseCase
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(dashboardUseCase *appstats.DashboardUseCase) *StatsHandler {
	return &StatsHandler{dashboardUseCase: dashboardUseCase}
}

// Dashboard 运营总览
// @Summary      运营总览
// @Description  馆藏/会员/在借/逾期/累计罚金各项计数
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=stats.DashboardResponse}
// @Router       /api/v1/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
