package service

import (
	"math"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/dto"
)

// Tier thresholds in reputation points.
const (
	PointsLegend      = 1000
	PointsExpert      = 500
	PointsBuilder     = 200
	PointsContributor = 50
)

const maxTier = "Max Level"

// TierFor places a reputation score. Progress is a percentage of the next
// threshold, rounded to two decimals.
func TierFor(reputation int) dto.Tier {
	var tier dto.Tier

	switch {
	case reputation >= PointsLegend:
		tier = dto.Tier{Name: "Legend", Next: maxTier, Target: PointsLegend, Progress: 100}
		return tier
	case reputation >= PointsExpert:
		tier = dto.Tier{Name: "Expert", Next: "Legend", Target: PointsLegend}
	case reputation >= PointsBuilder:
		tier = dto.Tier{Name: "Builder", Next: "Expert", Target: PointsExpert}
	case reputation >= PointsContributor:
		tier = dto.Tier{Name: "Contributor", Next: "Builder", Target: PointsBuilder}
	default:
		tier = dto.Tier{Name: "Newcomer", Next: "Contributor", Target: PointsContributor}
	}

	if reputation > 0 {
		tier.Progress = math.Round(float64(reputation)/float64(tier.Target)*10000) / 100
	}
	return tier
}
