package service

import (
	"context"
	"fmt"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	jobRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/job/repository"
	learningRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/learning/repository"
	matchRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/match/repository"
	userRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
)

// MatchStats breaks the match total down by status.
type MatchStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

type Stats struct {
	Users             int64      `json:"users"`
	Jobs              int64      `json:"jobs"`
	LearningResources int64      `json:"learningResources"`
	Matches           MatchStats `json:"matches"`
}

type StatService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type statService struct {
	userRepo     userRepository.UserRepository
	jobRepo      jobRepository.JobRepository
	matchRepo    matchRepository.MatchRepository
	learningRepo learningRepository.LearningResourceRepository
}

func NewStatService(
	userRepo userRepository.UserRepository,
	jobRepo jobRepository.JobRepository,
	matchRepo matchRepository.MatchRepository,
	learningRepo learningRepository.LearningResourceRepository,
) StatService {
	return &statService{
		userRepo:     userRepo,
		jobRepo:      jobRepo,
		matchRepo:    matchRepo,
		learningRepo: learningRepo,
	}
}

func (s *statService) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	var err error

	if stats.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Jobs, err = s.jobRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	if stats.LearningResources, err = s.learningRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count learning resources: %w", err)
	}

	byStatus, err := s.matchRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	stats.Matches = MatchStats{
		Pending:  byStatus[entity.MatchPending],
		Accepted: byStatus[entity.MatchAccepted],
		Rejected: byStatus[entity.MatchRejected],
	}
	for _, n := range byStatus {
		stats.Matches.Total += n
	}

	return &stats, nil
}
