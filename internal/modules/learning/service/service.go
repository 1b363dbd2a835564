package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/learning/dto"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/learning/repository"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

type LearningService interface {
	CreateResource(ctx context.Context, req dto.CreateLearningResourceRequest) (*entity.LearningResource, error)
	ListResources(ctx context.Context, filter dto.LearningResourceFilter) ([]*entity.LearningResource, error)
}

type learningService struct {
	repo repository.LearningResourceRepository
}

func NewLearningService(repo repository.LearningResourceRepository) LearningService {
	return &learningService{repo: repo}
}

func (s *learningService) CreateResource(ctx context.Context, req dto.CreateLearningResourceRequest) (*entity.LearningResource, error) {
	resource := &entity.LearningResource{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		Difficulty:  req.Difficulty,
		URL:         req.URL,
		Blockchain:  req.Blockchain,
		Skills:      req.Skills,
	}
	if resource.Blockchain != nil {
		lowered := strings.ToLower(strings.TrimSpace(*resource.Blockchain))
		resource.Blockchain = &lowered
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.New(http.StatusConflict, "Learning resource already exists", err)
		}
		return nil, fmt.Errorf("failed to create learning resource: %w", err)
	}
	return resource, nil
}

func (s *learningService) ListResources(ctx context.Context, filter dto.LearningResourceFilter) ([]*entity.LearningResource, error) {
	if skill := strings.TrimSpace(filter.Skill); skill != "" {
		return s.repo.FindBySkill(ctx, skill)
	}
	return s.repo.FindAll(ctx)
}
