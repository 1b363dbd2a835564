package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AccountType string

const (
	AccountCandidate AccountType = "candidate"
	AccountEmployer  AccountType = "employer"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountCandidate, AccountEmployer:
		return true
	}
	return false
}

type User struct {
	ID              uint                        `gorm:"primaryKey" json:"id"`
	Username        string                      `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash    string                      `gorm:"size:255;not null" json:"-"`
	Name            string                      `gorm:"size:100;not null" json:"name"`
	Bio             string                      `gorm:"type:text" json:"bio"`
	Skills          datatypes.JSONSlice[string] `json:"skills"`
	Experience      int                         `gorm:"not null;default:0" json:"experience"`
	Avatar          string                      `gorm:"type:text" json:"avatar"`
	Type            AccountType                 `gorm:"size:20;not null;index" json:"type"`
	WalletAddress   *string                     `gorm:"size:66;index" json:"walletAddress"`
	Reputation      int                         `gorm:"not null;default:0" json:"reputation"`
	Achievements    datatypes.JSONSlice[string] `json:"achievements"`
	OnchainActivity datatypes.JSONMap           `json:"onchainActivity"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
}

// BeforeCreate fills the collection defaults so they serialize as [] and {}
// instead of null.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Skills == nil {
		u.Skills = datatypes.JSONSlice[string]{}
	}
	if u.Achievements == nil {
		u.Achievements = datatypes.JSONSlice[string]{}
	}
	if u.OnchainActivity == nil {
		u.OnchainActivity = datatypes.JSONMap{}
	}
	return nil
}
