package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/bootstrap"
	"github.com/Goodnessmbakara/skillsverse/internal/entity"
	handler "github.com/Goodnessmbakara/skillsverse/internal/modules/learning/delivery/http"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/learning/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/learning/service"
	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
	"github.com/Goodnessmbakara/skillsverse/pkg/validator"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	db := testutil.NewDB(t)
	require.NoError(t, bootstrap.SeedLearningResources(db))

	h := handler.NewLearningHandler(service.NewLearningService(repository.NewLearningResourceRepository(db)))
	r := gin.New()
	r.GET("/api/learning-resources", h.GetResources)
	r.POST("/api/learning-resources", h.CreateResource)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetResources(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/api/learning-resources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []entity.LearningResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.NotEmpty(t, all)

	w = do(t, r, http.MethodGet, "/api/learning-resources?skill=solidity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []entity.LearningResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Solidity by Example", filtered[0].Title)
}

func TestCreateResource(t *testing.T) {
	r := setupRouter(t)
	body := map[string]any{
		"title":       "Cairo Basics",
		"description": "Starknet contracts in Cairo",
		"type":        "tutorial",
		"difficulty":  "beginner",
		"url":         "https://book.cairo-lang.org",
		"blockchain":  "Starknet",
		"skills":      []string{"Cairo"},
	}

	w := do(t, r, http.MethodPost, "/api/learning-resources", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created entity.LearningResource
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Blockchain)
	assert.Equal(t, "starknet", *created.Blockchain)

	w = do(t, r, http.MethodPost, "/api/learning-resources", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	body["url"] = "not a url"
	body["title"] = "Other"
	w = do(t, r, http.MethodPost, "/api/learning-resources", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "url must be a valid URL")
}
