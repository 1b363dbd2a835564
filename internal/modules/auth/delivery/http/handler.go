package handler

import (
	"log"
	"net/http"

	"github.com/Goodnessmbakara/skillsverse/internal/middleware"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/dto"
	auth "github.com/Goodnessmbakara/skillsverse/internal/modules/auth/service"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/session"
	"github.com/Goodnessmbakara/skillsverse/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service     auth.AuthService
	frontendURL string
}

func NewAuthHandler(service auth.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{service: service, frontendURL: frontendURL}
}

// Callback exchanges an authorization code for a token and salt.
func (h *AuthHandler) Callback(c *gin.Context) {
	var q dto.CallbackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "Invalid callback parameters", err)
		return
	}
	if q.Provider == "" {
		q.Provider = "google"
	}

	tokens, err := h.service.ExchangeCode(q.Code, q.Provider, "")
	if err != nil {
		response.ResponseError(c, err, "Failed to exchange code")
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) ProviderLogin(c *gin.Context) {
	var q dto.LoginQuery
	_ = c.ShouldBindQuery(&q)

	url, err := h.service.InitiateProviderLogin(c.Request.Context(), middleware.CurrentSession(c), c.Param("provider"), q.Redirect)
	if err != nil {
		response.ResponseError(c, err, "Failed to start login")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// ProviderReturn never reports errors to the caller; every failure ends on
// the frontend login page.
func (h *AuthHandler) ProviderReturn(c *gin.Context) {
	var q dto.ReturnQuery
	_ = c.ShouldBindQuery(&q)

	redirect, err := h.service.HandleProviderReturn(c.Request.Context(), middleware.CurrentSession(c), c.Param("provider"), q.Code, q.State)
	if err != nil {
		log.Printf("Provider login failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error=auth_failed")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+redirect)
}

// CompleteLogin accepts a token and salt obtained from Callback.
func (h *AuthHandler) CompleteLogin(c *gin.Context) {
	var req dto.CompleteLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid login data", err)
		return
	}

	sess := middleware.CurrentSession(c)
	if err := h.service.CompleteProviderLogin(c.Request.Context(), sess, req.Token, req.Salt); err != nil {
		response.ResponseError(c, err, "Failed to complete login")
		return
	}

	c.JSON(http.StatusOK, statusOf(sess))
}

func (h *AuthHandler) WalletLogin(c *gin.Context) {
	var req dto.WalletLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid login data", err)
		return
	}

	sess := middleware.CurrentSession(c)
	if err := h.service.WalletLogin(c.Request.Context(), sess, req.Address); err != nil {
		response.ResponseError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, statusOf(sess))
}

func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, statusOf(middleware.CurrentSession(c)))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.service.Logout(c.Request.Context(), sess); err != nil {
		response.ResponseError(c, err, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, statusOf(sess))
}

func statusOf(sess *session.Session) dto.StatusResponse {
	if !sess.IsAuthenticated() {
		return dto.StatusResponse{}
	}
	return dto.StatusResponse{
		Authenticated: true,
		Address:       sess.Address,
		LoginType:     string(sess.LoginType),
		Provider:      sess.Provider,
	}
}
