package handler

import (
	"net/http"

	"github.com/Goodnessmbakara/skillsverse/internal/middleware"
	chain "github.com/Goodnessmbakara/skillsverse/internal/modules/chain/service"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type ChainHandler struct {
	service chain.ChainService
}

func NewChainHandler(service chain.ChainService) *ChainHandler {
	return &ChainHandler{service: service}
}

// address returns the logged-in address or writes a 401. No query is issued
// without one.
func address(c *gin.Context) (string, bool) {
	sess := middleware.CurrentSession(c)
	if !sess.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required", "redirect": "/login"})
		return "", false
	}
	return sess.Address, true
}

func (h *ChainHandler) GetProfile(c *gin.Context) {
	addr, ok := address(c)
	if !ok {
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), addr)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ChainHandler) GetJobs(c *gin.Context) {
	if _, ok := address(c); !ok {
		return
	}

	jobs, err := h.service.Jobs(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *ChainHandler) GetPostedJobs(c *gin.Context) {
	addr, ok := address(c)
	if !ok {
		return
	}

	jobs, err := h.service.PostedJobs(c.Request.Context(), addr)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch posted jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

func (h *ChainHandler) GetMatches(c *gin.Context) {
	addr, ok := address(c)
	if !ok {
		return
	}

	matches, err := h.service.Matches(c.Request.Context(), addr)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

func (h *ChainHandler) GetKiosk(c *gin.Context) {
	addr, ok := address(c)
	if !ok {
		return
	}

	kiosk, err := h.service.Kiosk(c.Request.Context(), addr)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch kiosk")
		return
	}

	c.JSON(http.StatusOK, kiosk)
}

func (h *ChainHandler) GetName(c *gin.Context) {
	addr, ok := address(c)
	if !ok {
		return
	}

	name, err := h.service.Name(c.Request.Context(), addr)
	if err != nil {
		response.ResponseError(c, err, "Failed to resolve name")
		return
	}

	var value any
	if name != "" {
		value = name
	}
	c.JSON(http.StatusOK, gin.H{"address": addr, "name": value})
}
