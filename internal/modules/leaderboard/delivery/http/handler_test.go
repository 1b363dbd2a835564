package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	handler "github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/delivery/http"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/dto"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/leaderboard/service"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	seed := []struct {
		username   string
		kind       entity.AccountType
		reputation int
	}{
		{"ada", entity.AccountCandidate, 120},
		{"acme", entity.AccountEmployer, 600},
		{"bob", entity.AccountCandidate, 120},
		{"cy", entity.AccountCandidate, 5},
	}
	for _, s := range seed {
		u := &entity.User{Username: s.username, PasswordHash: "x", Name: s.username, Type: s.kind}
		require.NoError(t, repo.Create(ctx, u))
		_, err := repo.AddReputation(ctx, u.ID, s.reputation)
		require.NoError(t, err)
	}

	h := handler.NewLeaderboardHandler(service.NewLeaderboardService(repo))
	r := gin.New()
	r.GET("/api/leaderboard", h.GetLeaderboard)
	return r
}

func fetch(t *testing.T, r http.Handler, path string) (int, []dto.LeaderboardEntry) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var entries []dto.LeaderboardEntry
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	}
	return w.Code, entries
}

func TestGetLeaderboard(t *testing.T) {
	r := setupRouter(t)

	code, entries := fetch(t, r, "/api/leaderboard")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, entries, 4)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Username
		assert.Equal(t, i+1, e.Position)
	}
	// ties keep signup order
	assert.Equal(t, []string{"acme", "ada", "bob", "cy"}, names)
	assert.Equal(t, "Expert", entries[0].Tier.Name)
	assert.Equal(t, "Contributor", entries[1].Tier.Name)
}

func TestGetLeaderboardFilters(t *testing.T) {
	r := setupRouter(t)

	code, entries := fetch(t, r, "/api/leaderboard?type=candidate&limit=2")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, entries, 2)
	assert.Equal(t, "ada", entries[0].Username)
	assert.Equal(t, "bob", entries[1].Username)

	code, _ = fetch(t, r, "/api/leaderboard?limit=500")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = fetch(t, r, "/api/leaderboard?type=admin")
	assert.Equal(t, http.StatusBadRequest, code)
}
