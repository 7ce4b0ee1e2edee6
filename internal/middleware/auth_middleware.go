package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/app/session"
)

const sessionKey = "session"

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// AuthMiddleware guards routes behind a roster session cookie
type AuthMiddleware struct {
	sessions   *session.Manager
	cookieName string
	secure     bool
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *session.Manager, cookieName string, secure bool) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Sessions returns the session manager behind the middleware.
func (m *AuthMiddleware) Sessions() *session.Manager {
	return m.sessions
}

// lookup resolves the session cookie and stores the session on the context.
func (m *AuthMiddleware) lookup(c *gin.Context) bool {
	id, err := c.Cookie(m.cookieName)
	if err != nil {
		return false
	}
	s, ok := m.sessions.Get(id)
	if !ok {
		return false
	}
	c.Set(sessionKey, s)
	return true
}

// PageAuth redirects requests without a live session to the login page.
func (m *AuthMiddleware) PageAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.lookup(c) {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuth rejects requests without a live session.
func (m *AuthMiddleware) APIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.lookup(c) {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Session cookie missing or expired")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the session when there is one.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.lookup(c)
		c.Next()
	}
}

// SetSessionCookie issues the cookie for s.
func (m *AuthMiddleware) SetSessionCookie(c *gin.Context, s *session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, s.ID, 0, "/", "", m.secure, true)
}

// ClearSession destroys the current session and expires its cookie.
func (m *AuthMiddleware) ClearSession(c *gin.Context) {
	if s, ok := CurrentSession(c); ok {
		m.sessions.Destroy(s.ID)
	} else if id, err := c.Cookie(m.cookieName); err == nil {
		m.sessions.Destroy(id)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// CurrentSession returns the session attached by one of the guards.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
