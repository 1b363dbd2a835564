package handler

import (
	"net/http"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/job/dto"
	job "github.com/Goodnessmbakara/skillsverse/internal/modules/job/service"
	"github.com/Goodnessmbakara/skillsverse/pkg/request"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	service job.JobService
}

func NewJobHandler(service job.JobService) *JobHandler {
	return &JobHandler{service: service}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid job data", err)
		return
	}

	j, err := h.service.CreateJob(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err, "Failed to create job")
		return
	}

	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) GetJobs(c *gin.Context) {
	var filter dto.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "Invalid job filter", err)
		return
	}

	jobs, err := h.service.ListJobs(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) SearchJobs(c *gin.Context) {
	var query dto.SearchJobsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, "Invalid search query", err)
		return
	}

	jobs, err := h.service.SearchJobs(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err, "Failed to search jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := request.UintParam(c, "id")
	if !ok {
		response.NotFound(c, "Job not found")
		return
	}

	j, err := h.service.GetJob(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch job")
		return
	}

	c.JSON(http.StatusOK, j)
}
