package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	handler "github.com/Goodnessmbakara/skillsverse/internal/modules/user/delivery/http"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/user/repository"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/user/service"
	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
	"github.com/Goodnessmbakara/skillsverse/pkg/validator"
)

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Setup()

	h := handler.NewUserHandler(service.NewUserService(repository.NewUserRepository(db), nil))
	r := gin.New()
	r.POST("/api/users", h.CreateUser)
	r.GET("/api/users/:id", h.GetUser)
	r.GET("/api/users/by-username/:username", h.GetUserByUsername)
	r.PATCH("/api/users/:id/reputation", h.UpdateReputation)
	r.POST("/api/users/:id/avatar", h.UploadAvatar)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
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

var alice = map[string]any{
	"username": "alice",
	"password": "wonderland",
	"name":     "Alice",
	"skills":   []string{"Move"},
	"type":     "candidate",
}

func TestCreateUser(t *testing.T) {
	r := setupRouter(testutil.NewDB(t))

	w := doJSON(t, r, http.MethodPost, "/api/users", alice)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.EqualValues(t, 0, body["reputation"])
	assert.Equal(t, []any{}, body["achievements"])
	assert.Equal(t, map[string]any{}, body["onchainActivity"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "PasswordHash")
}

func TestCreateUser_Duplicate(t *testing.T) {
	r := setupRouter(testutil.NewDB(t))

	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/users", alice).Code)
	w := doJSON(t, r, http.MethodPost, "/api/users", alice)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"Username already exists"}`, w.Body.String())
}

func TestCreateUser_Invalid(t *testing.T) {
	r := setupRouter(testutil.NewDB(t))

	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"username": "al",
		"name":     "Al",
		"type":     "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid user data", body.Message)

	fields := map[string]bool{}
	for _, fe := range body.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["username"])
	assert.True(t, fields["password"])
	assert.True(t, fields["type"])
}

func TestGetUser(t *testing.T) {
	r := setupRouter(testutil.NewDB(t))
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/users", alice).Code)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/users/1", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/users/by-username/alice", nil).Code)

	for _, path := range []string{"/api/users/2", "/api/users/abc", "/api/users/by-username/bob"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"message":"User not found"}`, w.Body.String())
	}
}

func TestUpdateReputation(t *testing.T) {
	r := setupRouter(testutil.NewDB(t))
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/users", alice).Code)

	w := doJSON(t, r, http.MethodPatch, "/api/users/1/reputation", map[string]int{"points": 10})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 10, body["reputation"])

	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPatch, "/api/users/1/reputation", map[string]int{}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodPatch, "/api/users/9/reputation", map[string]int{"points": 1}).Code)
}

func TestUploadAvatar_NotConfigured(t *testing.T) {
	r := setupRouter(testutil.NewDB(t))

	w := doJSON(t, r, http.MethodPost, "/api/users/1/avatar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateUser_StoreError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	r := setupRouter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New("connection reset"))

	w := doJSON(t, r, http.MethodPost, "/api/users", alice)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Failed to create user"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
