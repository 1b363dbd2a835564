package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// matchTransitions lists the statuses reachable from each status. Accepted
// and rejected are final.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchPending:  {MatchPending, MatchAccepted, MatchRejected},
	MatchAccepted: {MatchAccepted},
	MatchRejected: {MatchRejected},
}

func (s MatchStatus) Valid() bool {
	_, ok := matchTransitions[s]
	return ok
}

// CanTransition reports whether a match in status s may move to next.
// Re-applying the current status is allowed.
func (s MatchStatus) CanTransition(next MatchStatus) bool {
	for _, allowed := range matchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Match struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"not null;index" json:"userId"`
	User        *User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	JobID       uint              `gorm:"not null;index" json:"jobId"`
	Job         *Job              `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	Score       int               `gorm:"not null" json:"score"`
	Status      MatchStatus       `gorm:"size:20;not null;default:pending;index" json:"status"`
	AIMatchData datatypes.JSONMap `json:"aiMatchData"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"createdAt"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = MatchPending
	}
	if m.AIMatchData == nil {
		m.AIMatchData = datatypes.JSONMap{}
	}
	return nil
}
