package service

import "github.com/Goodnessmbakara/skillsverse/internal/entity"

// CompletionReputationBonus is what the marketplace contract adds to a
// freelancer's reputation when a job is completed.
const CompletionReputationBonus = 10

type Profile struct {
	ID         string             `json:"id"`
	Owner      string             `json:"owner"`
	Name       string             `json:"name"`
	BioURL     string             `json:"bioUrl"`
	AvatarURL  string             `json:"avatarUrl"`
	Skills     map[string]uint64  `json:"skills"`
	Reputation uint64             `json:"reputation"`
	Type       entity.AccountType `json:"type"`
}

func (p *Profile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	return names
}

type Job struct {
	ID             string `json:"id"`
	Employer       string `json:"employer"`
	Title          string `json:"title"`
	DescriptionURL string `json:"descriptionUrl"`
	Payment        uint64 `json:"payment"`
	Freelancer     string `json:"freelancer,omitempty"`
	Completed      bool   `json:"completed"`
}

// Match is derived from a job that has a freelancer assigned. It is never
// stored.
type Match struct {
	ID                string             `json:"id"`
	JobID             string             `json:"jobId"`
	Freelancer        string             `json:"freelancer"`
	Score             int                `json:"score"`
	Status            entity.MatchStatus `json:"status"`
	ReputationAwarded int                `json:"reputationAwarded"`
	AIMatchData       map[string]any     `json:"aiMatchData"`
}

type Kiosk struct {
	ID string `json:"id"`
}
