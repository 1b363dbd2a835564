package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/job/dto"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/job/repository"
	search "github.com/Goodnessmbakara/skillsverse/internal/modules/search/service"
	userRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

const defaultSearchLimit = 20

type JobService interface {
	CreateJob(ctx context.Context, req dto.CreateJobRequest) (*entity.Job, error)
	GetJob(ctx context.Context, id uint) (*entity.Job, error)
	ListJobs(ctx context.Context, filter dto.JobFilter) ([]*entity.Job, error)
	SearchJobs(ctx context.Context, query dto.SearchJobsQuery) ([]*entity.Job, error)
	ReindexAll(ctx context.Context) error
}

type jobService struct {
	repo     repository.JobRepository
	userRepo userRepository.UserRepository
	index    search.JobIndex
}

func NewJobService(repo repository.JobRepository, userRepo userRepository.UserRepository, index search.JobIndex) JobService {
	return &jobService{repo: repo, userRepo: userRepo, index: index}
}

func (s *jobService) CreateJob(ctx context.Context, req dto.CreateJobRequest) (*entity.Job, error) {
	employer, err := s.userRepo.FindByID(ctx, req.EmployerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Invalid("employerId must reference an existing user")
		}
		return nil, fmt.Errorf("failed to look up employer: %w", err)
	}
	if employer.Type != entity.AccountEmployer {
		return nil, apperror.Invalid("employerId must reference an employer account")
	}

	job := &entity.Job{
		Title:        strings.TrimSpace(req.Title),
		Company:      strings.TrimSpace(req.Company),
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Location:     req.Location,
		CompanyLogo:  req.CompanyLogo,
		EmployerID:   req.EmployerID,
		Blockchain:   strings.ToLower(strings.TrimSpace(req.Blockchain)),
		Role:         req.Role,
		ContractType: req.ContractType,
		PaymentToken: req.PaymentToken,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := s.index.IndexJob(job); err != nil {
		log.Printf("failed to index job %d: %v", job.ID, err)
	}

	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, id uint) (*entity.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, filter dto.JobFilter) ([]*entity.Job, error) {
	return s.repo.FindAll(ctx, filter)
}

// SearchJobs queries the full-text index and falls back to the database
// filter when the index is disabled or failing.
func (s *jobService) SearchJobs(ctx context.Context, query dto.SearchJobsQuery) ([]*entity.Job, error) {
	limit := query.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}

	if s.index.Enabled() {
		ids, err := s.index.Search(ctx, query.Q, query.Blockchain, limit)
		if err == nil {
			return s.repo.FindByIDs(ctx, ids)
		}
		log.Printf("job search index failed, falling back to database: %v", err)
	}

	jobs, err := s.repo.FindAll(ctx, dto.JobFilter{Search: query.Q, Blockchain: query.Blockchain})
	if err != nil {
		return nil, err
	}
	if int64(len(jobs)) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// ReindexAll pushes every stored job to the search index.
func (s *jobService) ReindexAll(ctx context.Context) error {
	if !s.index.Enabled() {
		return nil
	}

	jobs, err := s.repo.FindAll(ctx, dto.JobFilter{})
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	return s.index.IndexJobs(jobs)
}
