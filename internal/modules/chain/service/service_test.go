package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/chaintest"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/client"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/chain/service"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/match/scoring"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
)

const (
	pkg       = "0xpkg"
	candidate = "0xcafe"
	employer  = "0xb055"
)

func profileObject(id, owner, accountType string) map[string]any {
	return chaintest.MoveObject(id, pkg+"::marketplace::Profile", map[string]any{
		"owner":      owner,
		"name":       chaintest.Bytes("Ada"),
		"bio_url":    chaintest.Bytes("walrus://bio"),
		"avatar_url": chaintest.Bytes("walrus://avatar"),
		"skills":     chaintest.SkillsMap(map[string]uint64{"Move": 5}),
		"reputation": "20",
		"type":       chaintest.Bytes(accountType),
	})
}

func jobObject(id, title, freelancer string, completed bool) map[string]any {
	var fl any
	if freelancer != "" {
		fl = freelancer
	}
	return chaintest.MoveObject(id, pkg+"::marketplace::Job", map[string]any{
		"employer":        employer,
		"title":           chaintest.Bytes(title),
		"description_url": chaintest.Bytes("walrus://desc"),
		"payment":         map[string]any{"fields": map[string]any{"value": "1000"}},
		"freelancer":      fl,
		"completed":       completed,
	})
}

// newNode serves profiles keyed by owner plus a fixed job set.
func newNode(t *testing.T, profiles map[string]map[string]any) *chaintest.Node {
	t.Helper()
	node := chaintest.NewNode(t)
	jobs := []any{
		jobObject("0xj1", "Move Developer", candidate, true),
		jobObject("0xj2", "Rust Auditor", candidate, false),
		jobObject("0xj3", "Designer", "", false),
		jobObject("0xj4", "Other", "0xother", false),
	}

	node.Handle("suix_getOwnedObjects", func(params []json.RawMessage) (any, *client.RPCError) {
		var owner string
		_ = json.Unmarshal(params[0], &owner)
		var query struct {
			Filter struct {
				StructType string `json:"StructType"`
			} `json:"filter"`
		}
		_ = json.Unmarshal(params[1], &query)

		switch query.Filter.StructType {
		case pkg + "::marketplace::Profile":
			if p, ok := profiles[owner]; ok {
				return chaintest.Page([]any{p}), nil
			}
		case pkg + "::marketplace::Job":
			if owner == employer {
				return chaintest.Page(jobs), nil
			}
		case "0x2::kiosk::Kiosk":
			if owner == employer {
				return chaintest.Page([]any{chaintest.MoveObject("0xk1", "0x2::kiosk::Kiosk", map[string]any{})}), nil
			}
		}
		return chaintest.Page([]any{}), nil
	})
	node.Result("suix_queryEvents", chaintest.Page([]any{
		map[string]any{"parsedJson": map[string]any{"job_id": "0xj1"}},
		map[string]any{"parsedJson": map[string]any{"job_id": "0xj2"}},
		map[string]any{"parsedJson": map[string]any{"job_id": "0xj3"}},
		map[string]any{"parsedJson": map[string]any{"job_id": "0xj4"}},
	}))
	node.Result("sui_multiGetObjects", jobs)
	return node
}

func newService(node *chaintest.Node) service.ChainService {
	return service.NewChainService(client.NewClient(node.URL(), time.Second), pkg, scoring.SkillOverlapScorer{})
}

func TestProfile(t *testing.T) {
	node := newNode(t, map[string]map[string]any{candidate: profileObject("0xp1", candidate, "candidate")})
	svc := newService(node)

	p, err := svc.Profile(context.Background(), candidate)
	require.NoError(t, err)
	assert.Equal(t, "0xp1", p.ID)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "walrus://bio", p.BioURL)
	assert.Equal(t, map[string]uint64{"Move": 5}, p.Skills)
	assert.Equal(t, uint64(20), p.Reputation)
	assert.Equal(t, entity.AccountCandidate, p.Type)

	_, err = svc.Profile(context.Background(), "0xnobody")
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestNoAddressIssuesNoQuery(t *testing.T) {
	node := newNode(t, nil)
	svc := newService(node)
	ctx := context.Background()

	_, err := svc.Profile(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	_, err = svc.Matches(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	_, err = svc.Name(ctx, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	assert.Zero(t, node.Calls("suix_getOwnedObjects"))
	assert.Zero(t, node.Calls("suix_resolveNameServiceNames"))
}

func TestJobs(t *testing.T) {
	svc := newService(newNode(t, nil))

	jobs, err := svc.Jobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 4)
	assert.Equal(t, "Move Developer", jobs[0].Title)
	assert.Equal(t, uint64(1000), jobs[0].Payment)
	assert.Equal(t, candidate, jobs[0].Freelancer)
	assert.True(t, jobs[0].Completed)
	assert.Empty(t, jobs[2].Freelancer)
}

func TestMatchesForCandidate(t *testing.T) {
	svc := newService(newNode(t, map[string]map[string]any{candidate: profileObject("0xp1", candidate, "candidate")}))

	matches, err := svc.Matches(context.Background(), candidate)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	byJob := map[string]*service.Match{}
	for _, m := range matches {
		byJob[m.JobID] = m
		assert.Equal(t, candidate, m.Freelancer)
		assert.GreaterOrEqual(t, m.Score, scoring.MinScore)
		assert.Less(t, m.Score, scoring.MaxScore)
	}
	assert.Equal(t, entity.MatchAccepted, byJob["0xj1"].Status)
	assert.Equal(t, service.CompletionReputationBonus, byJob["0xj1"].ReputationAwarded)
	assert.Equal(t, "0xj1-match", byJob["0xj1"].ID)
	assert.Equal(t, entity.MatchPending, byJob["0xj2"].Status)
	assert.Zero(t, byJob["0xj2"].ReputationAwarded)
	// "Move" is in the title of 0xj1
	assert.Greater(t, byJob["0xj1"].Score, scoring.MinScore)
}

func TestMatchesForEmployer(t *testing.T) {
	svc := newService(newNode(t, map[string]map[string]any{employer: profileObject("0xp2", employer, "employer")}))

	matches, err := svc.Matches(context.Background(), employer)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
	for _, m := range matches {
		assert.NotEmpty(t, m.Freelancer)
	}
}

func TestKioskAndName(t *testing.T) {
	node := newNode(t, nil)
	node.Result("suix_resolveNameServiceNames", chaintest.Page([]string{"boss.sui"}))
	svc := newService(node)
	ctx := context.Background()

	kiosk, err := svc.Kiosk(ctx, employer)
	require.NoError(t, err)
	assert.Equal(t, "0xk1", kiosk.ID)

	_, err = svc.Kiosk(ctx, candidate)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	name, err := svc.Name(ctx, employer)
	require.NoError(t, err)
	assert.Equal(t, "boss.sui", name)
}

func TestUpstreamFailure(t *testing.T) {
	node := chaintest.NewNode(t)
	svc := newService(node)

	_, err := svc.Jobs(context.Background())
	assert.Equal(t, http.StatusBadGateway, apperror.MapErrorToStatus(err))
}
