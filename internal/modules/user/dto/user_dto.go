package dto

import (
	"io"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
)

type CreateUserRequest struct {
	Username      string             `json:"username" binding:"required,min=3,max=50"`
	Password      string             `json:"password" binding:"required,min=6,max=72"`
	Name          string             `json:"name" binding:"required,max=100"`
	Bio           string             `json:"bio" binding:"max=2000"`
	Skills        []string           `json:"skills" binding:"max=50,dive,required,max=50"`
	Experience    int                `json:"experience" binding:"gte=0,max=80"`
	Avatar        string             `json:"avatar" binding:"omitempty,url"`
	Type          entity.AccountType `json:"type" binding:"required,oneof=candidate employer"`
	WalletAddress *string            `json:"walletAddress" binding:"omitempty,startswith=0x,hexadecimal,max=66"`
}

type UpdateReputationRequest struct {
	Points *int `json:"points" binding:"required"`
}

type AvatarFile struct {
	Reader   io.Reader
	FileName string
}
