package dto

import "github.com/Goodnessmbakara/skillsverse/internal/entity"

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type LeaderboardQuery struct {
	Limit int                `form:"limit" binding:"omitempty,min=1,max=50"`
	Type  entity.AccountType `form:"type" binding:"omitempty,oneof=candidate employer"`
}

// LeaderboardEntry is one ranked user. Position is 1-based.
type LeaderboardEntry struct {
	Position   int                `json:"position"`
	UserID     uint               `json:"userId"`
	Username   string             `json:"username"`
	Name       string             `json:"name"`
	Avatar     string             `json:"avatar"`
	Type       entity.AccountType `json:"type"`
	Reputation int                `json:"reputation"`
	Tier       Tier               `json:"tier"`
}

// Tier is the reputation band a user sits in and how far they are toward
// the next one.
type Tier struct {
	Name     string  `json:"name"`
	Next     string  `json:"next"`
	Target   int     `json:"target"`
	Progress float64 `json:"progress"`
}
