package dto

import "github.com/Goodnessmbakara/skillsverse/internal/entity"

type CreateMatchRequest struct {
	UserID uint               `json:"userId" binding:"required"`
	JobID  uint               `json:"jobId" binding:"required"`
	Status entity.MatchStatus `json:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

type UpdateMatchStatusRequest struct {
	Status entity.MatchStatus `json:"status" binding:"required,oneof=pending accepted rejected"`
}
