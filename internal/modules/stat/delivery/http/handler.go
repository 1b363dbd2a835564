package handler

import (
	"net/http"

	statService "github.com/Goodnessmbakara/skillsverse/internal/modules/stat/service"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{statService: statService}
}

func (h *StatHandler) GetStats(c *gin.Context) {
	stats, err := h.statService.GetStats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
