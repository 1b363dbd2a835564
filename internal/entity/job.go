package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Job struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	Title        string                      `gorm:"size:200;not null" json:"title"`
	Company      string                      `gorm:"size:200;not null" json:"company"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Requirements datatypes.JSONSlice[string] `json:"requirements"`
	Salary       *string                     `gorm:"size:100" json:"salary"`
	Location     *string                     `gorm:"size:200" json:"location"`
	CompanyLogo  *string                     `gorm:"type:text" json:"companyLogo"`
	EmployerID   uint                        `gorm:"not null;index" json:"employerId"`
	Employer     *User                       `gorm:"foreignKey:EmployerID;constraint:OnDelete:RESTRICT" json:"-"`
	Blockchain   string                      `gorm:"size:50;not null;index" json:"blockchain"`
	Role         string                      `gorm:"size:100;not null" json:"role"`
	ContractType string                      `gorm:"size:50;not null" json:"contractType"`
	PaymentToken *string                     `gorm:"size:50" json:"paymentToken"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.Requirements == nil {
		j.Requirements = datatypes.JSONSlice[string]{}
	}
	return nil
}
