package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LearningResource struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Title       string                      `gorm:"size:200;not null;uniqueIndex" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Type        string                      `gorm:"size:50;not null" json:"type"`
	Difficulty  string                      `gorm:"size:50;not null" json:"difficulty"`
	URL         string                      `gorm:"type:text;not null" json:"url"`
	Blockchain  *string                     `gorm:"size:50" json:"blockchain"`
	Skills      datatypes.JSONSlice[string] `json:"skills"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
}

func (r *LearningResource) BeforeCreate(tx *gorm.DB) error {
	if r.Skills == nil {
		r.Skills = datatypes.JSONSlice[string]{}
	}
	return nil
}
