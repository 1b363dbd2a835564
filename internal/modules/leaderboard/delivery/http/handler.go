package handler

import (
	"net/http"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/dto"
	leaderboard "github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/service"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service leaderboard.LeaderboardService
}

func NewLeaderboardHandler(service leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var query dto.LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "Invalid query parameters", err)
		return
	}

	entries, err := h.service.GetLeaderboard(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch leaderboard")
		return
	}

	c.JSON(http.StatusOK, entries)
}
