package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/dto"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		reputation int
		want       dto.Tier
	}{
		{-20, dto.Tier{Name: "Newcomer", Next: "Contributor", Target: 50, Progress: 0}},
		{0, dto.Tier{Name: "Newcomer", Next: "Contributor", Target: 50, Progress: 0}},
		{10, dto.Tier{Name: "Newcomer", Next: "Contributor", Target: 50, Progress: 20}},
		{50, dto.Tier{Name: "Contributor", Next: "Builder", Target: 200, Progress: 25}},
		{333, dto.Tier{Name: "Builder", Next: "Expert", Target: 500, Progress: 66.6}},
		{999, dto.Tier{Name: "Expert", Next: "Legend", Target: 1000, Progress: 99.9}},
		{1000, dto.Tier{Name: "Legend", Next: "Max Level", Target: 1000, Progress: 100}},
		{5000, dto.Tier{Name: "Legend", Next: "Max Level", Target: 1000, Progress: 100}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.reputation), "reputation %d", tt.reputation)
	}
}
