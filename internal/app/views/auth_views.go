package views

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/middleware"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// LoginPage shows the login form, or the dashboard when already logged in.
func (v *ViewController) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentSession(c); ok {
		redirect(c, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", loginPage{})
}

// Login checks the roster. A mismatch ends any session the browser still
// holds and shows the error inline.
func (v *ViewController) Login(c *gin.Context) {
	var req dto.LoginRequest
	// missing fields are a mismatch like any other
	_ = c.ShouldBind(&req)

	entry, err := v.svc.Auth.Login(req.ID, req.Name)
	if err != nil {
		v.logger.Warn().Str("id", req.ID).Msg("Login failed")
		v.auth.ClearSession(c)
		c.HTML(http.StatusUnauthorized, "login.html", loginPage{
			ID:    req.ID,
			Name:  req.Name,
			Error: apperrors.ErrInvalidCredentials.Error(),
		})
		return
	}

	if old, ok := middleware.CurrentSession(c); ok {
		v.auth.Sessions().Destroy(old.ID)
	}
	s := v.auth.Sessions().Create(entry)
	v.auth.SetSessionCookie(c, s)
	v.logger.Info().Str("id", entry.ID).Msg("Operator logged in")
	redirect(c, "/")
}

// Logout ends the session and returns to the login page.
func (v *ViewController) Logout(c *gin.Context) {
	v.auth.ClearSession(c)
	redirect(c, middleware.LoginPath)
}

// Dashboard is the landing page after login.
func (v *ViewController) Dashboard(c *gin.Context) {
	w := workspaceOf(c)
	users, courses, posts := w.Users.Snapshot(), w.Courses.Snapshot(), w.Announcements.Snapshot()
	c.HTML(http.StatusOK, "dashboard.html", dashboardPage{
		Page:          v.page(c, "Dashboard", "dashboard"),
		Users:         collectionSummary{Loaded: users.Loaded, Count: len(users.Items)},
		Courses:       collectionSummary{Loaded: courses.Loaded, Count: len(courses.Items)},
		Announcements: collectionSummary{Loaded: posts.Loaded, Count: len(posts.Items)},
	})
}
