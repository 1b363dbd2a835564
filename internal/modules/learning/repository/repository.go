package repository

import (
	"context"
	"strings"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/pkg/database"
	"gorm.io/gorm"
)

type LearningResourceRepository interface {
	Create(ctx context.Context, resource *entity.LearningResource) error
	FindAll(ctx context.Context) ([]*entity.LearningResource, error)
	FindBySkill(ctx context.Context, skill string) ([]*entity.LearningResource, error)
	Count(ctx context.Context) (int64, error)
}

type learningResourceRepository struct {
	db *gorm.DB
}

func NewLearningResourceRepository(db *gorm.DB) LearningResourceRepository {
	return &learningResourceRepository{db: db}
}

// Create returns apperror.ErrConflict when the title is already catalogued.
func (r *learningResourceRepository) Create(ctx context.Context, resource *entity.LearningResource) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(resource).Error)
}

func (r *learningResourceRepository) FindAll(ctx context.Context) ([]*entity.LearningResource, error) {
	resources := []*entity.LearningResource{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&resources).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return resources, nil
}

// FindBySkill filters in memory. Skills are a JSON column and the catalog is
// small, so there is no portable index to query.
func (r *learningResourceRepository) FindBySkill(ctx context.Context, skill string) ([]*entity.LearningResource, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := []*entity.LearningResource{}
	for _, resource := range all {
		for _, s := range resource.Skills {
			if strings.EqualFold(s, skill) {
				matched = append(matched, resource)
				break
			}
		}
	}
	return matched, nil
}

func (r *learningResourceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.LearningResource{}).Count(&count).Error
	return count, database.TranslateError(err)
}
