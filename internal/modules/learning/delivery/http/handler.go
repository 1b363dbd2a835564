package handler

import (
	"net/http"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/learning/dto"
	learning "github.com/Goodnessmbakara/skillsverse/internal/modules/learning/service"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type LearningHandler struct {
	service learning.LearningService
}

func NewLearningHandler(service learning.LearningService) *LearningHandler {
	return &LearningHandler{service: service}
}

func (h *LearningHandler) CreateResource(c *gin.Context) {
	var req dto.CreateLearningResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid learning resource data", err)
		return
	}

	resource, err := h.service.CreateResource(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err, "Failed to create learning resource")
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (h *LearningHandler) GetResources(c *gin.Context) {
	var filter dto.LearningResourceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "Invalid query parameters", err)
		return
	}

	resources, err := h.service.ListResources(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch learning resources")
		return
	}

	c.JSON(http.StatusOK, resources)
}
