package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/client"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/scoring"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

const kioskType = "0x2::kiosk::Kiosk"

type ChainService interface {
	Profile(ctx context.Context, address string) (*Profile, error)
	Jobs(ctx context.Context) ([]*Job, error)
	PostedJobs(ctx context.Context, address string) ([]*Job, error)
	Matches(ctx context.Context, address string) ([]*Match, error)
	Kiosk(ctx context.Context, address string) (*Kiosk, error)
	Name(ctx context.Context, address string) (string, error)
}

type chainService struct {
	node      client.Node
	packageID string
	scorer    scoring.Scorer
}

func NewChainService(node client.Node, packageID string, scorer scoring.Scorer) ChainService {
	if scorer == nil {
		scorer = scoring.NewRandomScorer(nil)
	}
	return &chainService{node: node, packageID: packageID, scorer: scorer}
}

func (s *chainService) typeTag(name string) string {
	return fmt.Sprintf("%s::marketplace::%s", s.packageID, name)
}

func requireAddress(address string) error {
	if address == "" {
		return apperror.New(http.StatusUnauthorized, "Authentication required", apperror.ErrUnauthorized)
	}
	return nil
}

func (s *chainService) Profile(ctx context.Context, address string) (*Profile, error) {
	if err := requireAddress(address); err != nil {
		return nil, err
	}

	objects, err := s.node.OwnedObjects(ctx, address, s.typeTag("Profile"))
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, apperror.NotFound("Profile not found")
	}

	profile, err := decodeProfile(objects[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUpstream, err)
	}
	return profile, nil
}

// Jobs lists every job announced through JobPosted events.
func (s *chainService) Jobs(ctx context.Context) ([]*Job, error) {
	ids, err := s.node.PostedJobIDs(ctx, s.typeTag("JobPosted"))
	if err != nil {
		return nil, err
	}
	objects, err := s.node.MultiGetObjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.decodeJobs(objects), nil
}

func (s *chainService) PostedJobs(ctx context.Context, address string) ([]*Job, error) {
	if err := requireAddress(address); err != nil {
		return nil, err
	}

	objects, err := s.node.OwnedObjects(ctx, address, s.typeTag("Job"))
	if err != nil {
		return nil, err
	}
	return s.decodeJobs(objects), nil
}

// decodeJobs skips objects that are not jobs or do not decode.
func (s *chainService) decodeJobs(objects []client.Object) []*Job {
	jobType := s.typeTag("Job")
	jobs := make([]*Job, 0, len(objects))
	for _, obj := range objects {
		if obj.Type != "" && obj.Type != jobType {
			continue
		}
		job, err := decodeJob(obj)
		if err != nil {
			log.Printf("skipping undecodable job object: %v", err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// Matches derives matches from assigned jobs. Employers see their posted jobs
// that have a freelancer; everyone else sees the jobs they are assigned to.
func (s *chainService) Matches(ctx context.Context, address string) ([]*Match, error) {
	if err := requireAddress(address); err != nil {
		return nil, err
	}

	profile, err := s.Profile(ctx, address)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	var skills []string
	var jobs []*Job
	if profile != nil && profile.Type == entity.AccountEmployer {
		if jobs, err = s.PostedJobs(ctx, address); err != nil {
			return nil, err
		}
	} else {
		if profile != nil {
			skills = profile.SkillNames()
		}
		all, err := s.Jobs(ctx)
		if err != nil {
			return nil, err
		}
		for _, job := range all {
			if job.Freelancer == address {
				jobs = append(jobs, job)
			}
		}
	}

	matches := make([]*Match, 0, len(jobs))
	for _, job := range jobs {
		if job.Freelancer == "" {
			continue
		}
		matches = append(matches, s.deriveMatch(job, skills))
	}
	return matches, nil
}

func (s *chainService) deriveMatch(job *Job, skills []string) *Match {
	result := s.scorer.Score(skills, strings.Fields(job.Title))
	m := &Match{
		ID:          job.ID + "-match",
		JobID:       job.ID,
		Freelancer:  job.Freelancer,
		Score:       result.Score,
		Status:      entity.MatchPending,
		AIMatchData: result.Explanation,
	}
	if job.Completed {
		m.Status = entity.MatchAccepted
		m.ReputationAwarded = CompletionReputationBonus
	}
	return m
}

func (s *chainService) Kiosk(ctx context.Context, address string) (*Kiosk, error) {
	if err := requireAddress(address); err != nil {
		return nil, err
	}

	objects, err := s.node.OwnedObjects(ctx, address, kioskType)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, apperror.NotFound("Kiosk not found")
	}
	return &Kiosk{ID: objects[0].ID}, nil
}

func (s *chainService) Name(ctx context.Context, address string) (string, error) {
	if err := requireAddress(address); err != nil {
		return "", err
	}
	return s.node.ResolveName(ctx, address)
}
