package dto

type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Company      string   `json:"company" binding:"required,max=200"`
	Description  string   `json:"description" binding:"required,max=20000"`
	Requirements []string `json:"requirements" binding:"max=50,dive,required,max=200"`
	Salary       *string  `json:"salary" binding:"omitempty,max=100"`
	Location     *string  `json:"location" binding:"omitempty,max=200"`
	CompanyLogo  *string  `json:"companyLogo" binding:"omitempty,url"`
	EmployerID   uint     `json:"employerId" binding:"required"`
	Blockchain   string   `json:"blockchain" binding:"required,max=50"`
	Role         string   `json:"role" binding:"required,max=100"`
	ContractType string   `json:"contractType" binding:"required,max=50"`
	PaymentToken *string  `json:"paymentToken" binding:"omitempty,max=50"`
}

type JobFilter struct {
	Blockchain string `form:"blockchain" binding:"max=50"`
	EmployerID uint   `form:"employer_id"`
	Search     string `form:"search" binding:"max=100"`
}

type SearchJobsQuery struct {
	Q          string `form:"q" binding:"max=200"`
	Blockchain string `form:"blockchain" binding:"max=50"`
	Limit      int64  `form:"limit" binding:"omitempty,min=1,max=100"`
}
