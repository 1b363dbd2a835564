package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/dto"
	match "github.com/Goodnessmbakara/skillsverse/internal/modules/match/service"
	"github.com/Goodnessmbakara/skillsverse/pkg/ratelimit"
	"github.com/Goodnessmbakara/skillsverse/pkg/request"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	service match.MatchService
}

func NewMatchHandler(service match.MatchService) *MatchHandler {
	return &MatchHandler{service: service}
}

func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req dto.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid match data", err)
		return
	}

	m, err := h.service.CreateMatch(c.Request.Context(), req)
	if err != nil {
		var limitErr *ratelimit.LimitError
		if errors.As(err, &limitErr) {
			seconds := int(math.Ceil(limitErr.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(seconds, 1)))
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many match requests, try again later"})
			return
		}
		response.ResponseError(c, err, "Failed to create match")
		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *MatchHandler) GetMatchesByUser(c *gin.Context) {
	userID, ok := request.UintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	matches, err := h.service.GetMatchesByUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

func (h *MatchHandler) GetMatchesByJob(c *gin.Context) {
	jobID, ok := request.UintParam(c, "jobId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid job id"})
		return
	}

	matches, err := h.service.GetMatchesByJob(c.Request.Context(), jobID)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	id, ok := request.UintParam(c, "id")
	if !ok {
		response.NotFound(c, "Match not found")
		return
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid status", err)
		return
	}

	m, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.ResponseError(c, err, "Failed to update match status")
		return
	}

	c.JSON(http.StatusOK, m)
}
