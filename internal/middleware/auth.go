package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Goodnessmbakara/skillsverse/internal/modules/auth/session"
	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

type SessionMiddleware struct {
	store      session.Store
	cookieName string
	secure     bool
	ttl        time.Duration
}

func NewSessionMiddleware(store session.Store, cookieName string, secure bool, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		store:      store,
		cookieName: cookieName,
		secure:     secure,
		ttl:        ttl,
	}
}

// Load attaches the caller's session to the context. A missing, expired or
// unreadable session is replaced by a fresh one.
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session

		if id, err := c.Cookie(m.cookieName); err == nil && id != "" {
			loaded, err := m.store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				sess = loaded
			case !errors.Is(err, session.ErrNotFound):
				log.Printf("Failed to load session: %v", err)
			}
		}
		if sess == nil {
			sess = session.New()
		}

		c.Set(sessionContextKey, sess)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cookieName, sess.ID, int(m.ttl.Seconds()), "/", "", m.secure, true)
		c.Next()
	}
}

// CurrentSession returns the session attached by Load, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// RequireSession rejects requests whose session is not logged in.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":  "Authentication required",
				"redirect": "/login",
			})
			return
		}
		c.Next()
	}
}
