package handler

import (
	"net/http"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/user/dto"
	user "github.com/Goodnessmbakara/skillsverse/internal/modules/user/service"
	"github.com/Goodnessmbakara/skillsverse/pkg/request"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid user data", err)
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := request.UintParam(c, "id")
	if !ok {
		response.NotFound(c, "User not found")
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	u, err := h.service.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.ResponseError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateReputation(c *gin.Context) {
	id, ok := request.UintParam(c, "id")
	if !ok {
		response.NotFound(c, "User not found")
		return
	}

	var req dto.UpdateReputationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid reputation data", err)
		return
	}

	u, err := h.service.UpdateReputation(c.Request.Context(), id, *req.Points)
	if err != nil {
		response.ResponseError(c, err, "Failed to update reputation")
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	id, ok := request.UintParam(c, "id")
	if !ok {
		response.NotFound(c, "User not found")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "avatar file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read avatar"})
		return
	}
	defer file.Close()

	u, err := h.service.UploadAvatar(c.Request.Context(), id, dto.AvatarFile{
		Reader:   file,
		FileName: fileHeader.Filename,
	})
	if err != nil {
		response.ResponseError(c, err, "Failed to upload avatar")
		return
	}

	c.JSON(http.StatusOK, u)
}
