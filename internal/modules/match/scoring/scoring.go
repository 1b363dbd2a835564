// Package scoring assigns match scores from a user's skills and a job's
// requirements. Scores always fall in [MinScore, MaxScore).
package scoring

import (
	"math/rand/v2"
	"strings"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
)

const (
	MinScore = 60
	MaxScore = 100
)

// Result is a score together with the explanation stored in aiMatchData.
type Result struct {
	Score       int
	Explanation map[string]any
}

type Scorer interface {
	Name() string
	Score(skills, requirements []string) Result
}

// New returns the scorer registered under name, defaulting to random.
func New(name string) Scorer {
	if name == "skills" {
		return SkillOverlapScorer{}
	}
	return NewRandomScorer(nil)
}

// RandomScorer draws uniformly from [MinScore, MaxScore) and ignores its
// inputs.
type RandomScorer struct {
	intN func(n int) int
}

// NewRandomScorer uses intN as the random source; nil selects math/rand/v2.
func NewRandomScorer(intN func(n int) int) RandomScorer {
	if intN == nil {
		intN = rand.IntN
	}
	return RandomScorer{intN: intN}
}

func (RandomScorer) Name() string { return "random" }

func (s RandomScorer) Score(_, _ []string) Result {
	intN := s.intN
	if intN == nil {
		intN = rand.IntN
	}
	score := MinScore + intN(MaxScore-MinScore)
	return Result{
		Score:       clamp(score),
		Explanation: map[string]any{"scorer": "random"},
	}
}

// SkillOverlapScorer scores by the share of job requirements covered by the
// user's skills, compared case-insensitively.
type SkillOverlapScorer struct{}

func (SkillOverlapScorer) Name() string { return "skills" }

func (SkillOverlapScorer) Score(skills, requirements []string) Result {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[normalize(s)] = true
	}

	matched := []string{}
	missing := []string{}
	seen := make(map[string]bool, len(requirements))
	for _, req := range requirements {
		key := normalize(req)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if have[key] {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}

	overlap := 0.0
	if total := len(matched) + len(missing); total > 0 {
		overlap = float64(len(matched)) / float64(total)
	}

	return Result{
		Score: clamp(MinScore + int(overlap*float64(MaxScore-MinScore))),
		Explanation: map[string]any{
			"scorer":        "skills",
			"overlap":       overlap,
			"matchedSkills": matched,
			"missingSkills": missing,
		},
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score >= MaxScore {
		return MaxScore - 1
	}
	return score
}

// ForMatch scores a stored user against a stored job.
func ForMatch(s Scorer, user *entity.User, job *entity.Job) Result {
	return s.Score(user.Skills, job.Requirements)
}
