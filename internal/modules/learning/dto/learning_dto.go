package dto

type CreateLearningResourceRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=200"`
	Description string   `json:"description" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=course tutorial documentation guide video article"`
	Difficulty  string   `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	URL         string   `json:"url" binding:"required,url"`
	Blockchain  *string  `json:"blockchain" binding:"omitempty,max=50"`
	Skills      []string `json:"skills" binding:"omitempty,dive,required,max=50"`
}

type LearningResourceFilter struct {
	Skill string `form:"skill"`
}
