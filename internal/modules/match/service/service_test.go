package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	jobRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/job/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/dto"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/scoring"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/service"
	notifRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/notification/repository"
	notifService "github.com/Goodnessmbakara/skillsverse/internal/modules/notification/service"
	userRepository "github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/Goodnessmbakara/skillsverse/pkg/metrics"
	"github.com/Goodnessmbakara/skillsverse/pkg/ratelimit"
)

type fixture struct {
	db        *gorm.DB
	candidate *entity.User
	employer  *entity.User
	job       *entity.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	ctx := context.Background()
	users := userRepository.NewUserRepository(db)

	f := &fixture{db: db}
	f.candidate = &entity.User{Username: "alice", PasswordHash: "x", Name: "Alice", Type: entity.AccountCandidate, Skills: []string{"Move", "Rust"}}
	f.employer = &entity.User{Username: "boss", PasswordHash: "x", Name: "Boss", Type: entity.AccountEmployer}
	require.NoError(t, users.Create(ctx, f.candidate))
	require.NoError(t, users.Create(ctx, f.employer))

	f.job = &entity.Job{
		Title: "Move Developer", Company: "Mysten", Description: "d",
		Requirements: []string{"Move", "TypeScript"},
		EmployerID:   f.employer.ID, Blockchain: "sui", Role: "dev", ContractType: "full-time",
	}
	require.NoError(t, jobRepository.NewJobRepository(db).Create(ctx, f.job))
	return f
}

func (f *fixture) service(opts service.Options) service.MatchService {
	return service.NewMatchService(
		repository.NewMatchRepository(f.db),
		userRepository.NewUserRepository(f.db),
		jobRepository.NewJobRepository(f.db),
		opts,
	)
}

func TestCreateMatch_ScoreInRange(t *testing.T) {
	f := newFixture(t)
	svc := f.service(service.Options{Metrics: metrics.New()})

	for i := 0; i < 25; i++ {
		m, err := svc.CreateMatch(context.Background(), dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: f.job.ID})
		require.NoError(t, err)
		assert.NotZero(t, m.ID)
		assert.Equal(t, f.candidate.ID, m.UserID)
		assert.Equal(t, f.job.ID, m.JobID)
		assert.Equal(t, entity.MatchPending, m.Status)
		assert.GreaterOrEqual(t, m.Score, scoring.MinScore)
		assert.Less(t, m.Score, scoring.MaxScore)
	}
}

func TestCreateMatch_SkillScorerExplains(t *testing.T) {
	f := newFixture(t)
	svc := f.service(service.Options{Scorer: scoring.SkillOverlapScorer{}})

	m, err := svc.CreateMatch(context.Background(), dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: f.job.ID, Status: entity.MatchAccepted})
	require.NoError(t, err)
	assert.Equal(t, 80, m.Score)
	assert.Equal(t, entity.MatchAccepted, m.Status)
	assert.Equal(t, "skills", m.AIMatchData["scorer"])
}

func TestCreateMatch_ReferencesMustExist(t *testing.T) {
	f := newFixture(t)
	svc := f.service(service.Options{})
	ctx := context.Background()

	_, err := svc.CreateMatch(ctx, dto.CreateMatchRequest{UserID: 999, JobID: f.job.ID})
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	_, err = svc.CreateMatch(ctx, dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: 999})
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestCreateMatch_RateLimited(t *testing.T) {
	f := newFixture(t)
	rdb, _ := testutil.NewRedis(t)
	svc := f.service(service.Options{Limiter: ratelimit.New(rdb), RateLimitWindow: time.Minute})
	ctx := context.Background()
	req := dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: f.job.ID}

	_, err := svc.CreateMatch(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateMatch(ctx, req)
	var limitErr *ratelimit.LimitError
	assert.True(t, errors.As(err, &limitErr))
	assert.Equal(t, http.StatusTooManyRequests, apperror.MapErrorToStatus(err))

	other := &entity.Job{
		Title: "Rust Developer", Company: "Mysten", Description: "d",
		EmployerID: f.employer.ID, Blockchain: "sui", Role: "dev", ContractType: "contract",
	}
	require.NoError(t, jobRepository.NewJobRepository(f.db).Create(ctx, other))

	// the window is per job, a different application goes through
	_, err = svc.CreateMatch(ctx, dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: other.ID})
	assert.NoError(t, err)
}

func TestCreateMatch_RejectedRequestKeepsWindowFree(t *testing.T) {
	f := newFixture(t)
	rdb, mr := testutil.NewRedis(t)
	svc := f.service(service.Options{Limiter: ratelimit.New(rdb), RateLimitWindow: time.Minute})
	ctx := context.Background()

	_, err := svc.CreateMatch(ctx, dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: 999})
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
	assert.Empty(t, mr.Keys())

	_, err = svc.CreateMatch(ctx, dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: f.job.ID})
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	notifier := notifService.NewNotificationService(notifRepository.NewNotificationRepository(f.db), nil)
	svc := f.service(service.Options{Notifier: notifier})
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, dto.CreateMatchRequest{UserID: f.candidate.ID, JobID: f.job.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, m.ID, entity.MatchAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.MatchAccepted, updated.Status)
	assert.Equal(t, m.Score, updated.Score)

	for _, userID := range []uint{f.candidate.ID, f.employer.ID} {
		count, err := notifier.UnreadCount(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "user %d", userID)
	}

	// same status again is a no-op without a second notification
	_, err = svc.UpdateStatus(ctx, m.ID, entity.MatchAccepted)
	require.NoError(t, err)
	count, _ := notifier.UnreadCount(ctx, f.candidate.ID)
	assert.Equal(t, int64(1), count)

	_, err = svc.UpdateStatus(ctx, m.ID, entity.MatchRejected)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	_, err = svc.UpdateStatus(ctx, m.ID, entity.MatchStatus("archived"))
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	f := newFixture(t)
	svc := f.service(service.Options{})

	_, err := svc.UpdateStatus(context.Background(), 12345, entity.MatchAccepted)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	assert.EqualError(t, err, "Match not found")

	matches, err := svc.GetMatchesByUser(context.Background(), f.candidate.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
