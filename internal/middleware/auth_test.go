package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/middleware"
	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/session"
	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
)

func setupRouter(t *testing.T) (*gin.Engine, *session.RedisStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, _ := testutil.NewRedis(t)
	store := session.NewRedisStore(rdb, time.Hour)
	sm := middleware.NewSessionMiddleware(store, "sv_session", false, time.Hour)

	r := gin.New()
	r.Use(sm.Load())
	r.POST("/login", func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		sess.LoginType = session.LoginWallet
		sess.Address = "0xabc"
		require.NoError(t, store.Save(c.Request.Context(), sess))
		c.Status(http.StatusNoContent)
	})
	r.GET("/private", middleware.RequireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CurrentSession(c).Address)
	})
	return r, store
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sv_session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Authentication required","redirect":"/login"}`, w.Body.String())
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, cookie.Value, sessionCookie(t, w).Value)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xabc", w.Body.String())
}

func TestUnknownCookieStartsFreshSession(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "sv_session", Value: "forged"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEqual(t, "forged", sessionCookie(t, w).Value)
}
