package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/bootstrap"
	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
)

func TestSeedLearningResourcesIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, bootstrap.SeedLearningResources(db))
	var first int64
	require.NoError(t, db.Model(&entity.LearningResource{}).Count(&first).Error)
	assert.Positive(t, first)

	require.NoError(t, bootstrap.SeedLearningResources(db))
	var second int64
	require.NoError(t, db.Model(&entity.LearningResource{}).Count(&second).Error)
	assert.Equal(t, first, second)
}
