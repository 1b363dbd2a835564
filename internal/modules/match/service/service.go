package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	jobRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/job/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/dto"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/scoring"
	notifService "github.com/Goodnessmbakara/skillsverse/internal/modules/notification/service"
	userRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/Goodnessmbakara/skillsverse/pkg/metrics"
	"github.com/Goodnessmbakara/skillsverse/pkg/ratelimit"
)

// createMatchAction keys the limiter per job, so it only throttles repeat
// applications by one user to the same job.
func createMatchAction(jobID uint) string {
	return fmt.Sprintf("create_match:job:%d", jobID)
}

type MatchService interface {
	CreateMatch(ctx context.Context, req dto.CreateMatchRequest) (*entity.Match, error)
	GetMatchesByUser(ctx context.Context, userID uint) ([]*entity.Match, error)
	GetMatchesByJob(ctx context.Context, jobID uint) ([]*entity.Match, error)
	UpdateStatus(ctx context.Context, id uint, status entity.MatchStatus) (*entity.Match, error)
}

type Options struct {
	Scorer          scoring.Scorer
	Limiter         *ratelimit.Limiter
	RateLimitWindow time.Duration
	Notifier        notifService.NotificationService
	Metrics         *metrics.Metrics
}

type matchService struct {
	repo     repository.MatchRepository
	userRepo userRepository.UserRepository
	jobRepo  jobRepository.JobRepository
	opts     Options
}

// NewMatchService builds the service. Every Options field is optional; the
// scorer defaults to the random scorer.
func NewMatchService(
	repo repository.MatchRepository,
	userRepo userRepository.UserRepository,
	jobRepo jobRepository.JobRepository,
	opts Options,
) MatchService {
	if opts.Scorer == nil {
		opts.Scorer = scoring.NewRandomScorer(nil)
	}
	return &matchService{repo: repo, userRepo: userRepo, jobRepo: jobRepo, opts: opts}
}

func (s *matchService) CreateMatch(ctx context.Context, req dto.CreateMatchRequest) (*entity.Match, error) {
	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Invalid("userId must reference an existing user")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	job, err := s.jobRepo.FindByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Invalid("jobId must reference an existing job")
		}
		return nil, fmt.Errorf("failed to look up job: %w", err)
	}

	action := createMatchAction(job.ID)
	if err := s.opts.Limiter.Allow(ctx, user.ID, action, s.opts.RateLimitWindow); err != nil {
		var limitErr *ratelimit.LimitError
		if errors.As(err, &limitErr) {
			return nil, err
		}
		// fail open when redis is unreachable
		log.Printf("match rate limit check failed: %v", err)
	}

	status := req.Status
	if status == "" {
		status = entity.MatchPending
	}

	result := scoring.ForMatch(s.opts.Scorer, user, job)
	match := &entity.Match{
		UserID:      user.ID,
		JobID:       job.ID,
		Score:       result.Score,
		Status:      status,
		AIMatchData: result.Explanation,
	}

	if err := s.repo.Create(ctx, match); err != nil {
		if resetErr := s.opts.Limiter.Reset(ctx, user.ID, action); resetErr != nil {
			log.Printf("failed to release match rate limit for user %d: %v", user.ID, resetErr)
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.opts.Metrics.ObserveMatch(match.Score)
	return match, nil
}

func (s *matchService) GetMatchesByUser(ctx context.Context, userID uint) ([]*entity.Match, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *matchService) GetMatchesByJob(ctx context.Context, jobID uint) ([]*entity.Match, error) {
	return s.repo.FindByJob(ctx, jobID)
}

// UpdateStatus moves a match to status. The score is never touched.
func (s *matchService) UpdateStatus(ctx context.Context, id uint, status entity.MatchStatus) (*entity.Match, error) {
	if !status.Valid() {
		return nil, apperror.Invalid(fmt.Sprintf("invalid match status %q", status))
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("Match not found")
		}
		return nil, err
	}

	if !current.Status.CanTransition(status) {
		return nil, apperror.Invalid(fmt.Sprintf("cannot change match status from %s to %s", current.Status, status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, status)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New(http.StatusConflict, "Match status changed concurrently, retry", apperror.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	if current.Status != status {
		s.opts.Metrics.ObserveStatusChange(string(status))
		s.notify(ctx, updated)
	}
	return updated, nil
}

// notify tells the candidate and the job's employer about the new status.
// Failures are logged and never fail the update.
func (s *matchService) notify(ctx context.Context, match *entity.Match) {
	if s.opts.Notifier == nil {
		return
	}

	recipients := []uint{match.UserID}
	title := fmt.Sprintf("job #%d", match.JobID)
	if job, err := s.jobRepo.FindByID(ctx, match.JobID); err == nil {
		title = job.Title
		if job.EmployerID != match.UserID {
			recipients = append(recipients, job.EmployerID)
		}
	}

	for _, userID := range recipients {
		matchID := match.ID
		err := s.opts.Notifier.CreateNotification(ctx, &entity.Notification{
			UserID:  userID,
			Type:    entity.NotificationMatchStatus,
			MatchID: &matchID,
			Message: fmt.Sprintf("Match for %s is now %s", title, match.Status),
		})
		if err != nil {
			log.Printf("failed to notify user %d about match %d: %v", userID, match.ID, err)
		}
	}
}
