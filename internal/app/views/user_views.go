package views

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/models/dto"
)

type userForm struct {
	ID         string `form:"id"`
	UserAccess string `form:"user_access"`
	SessionID  string `form:"sessionId"`
	EndSubs    string `form:"end_subs"`
	IsAdmitted bool   `form:"isAdmitted"`
}

// Users lists students. Submitting the filter form replaces the stored
// filter; a plain visit keeps the last one.
func (v *ViewController) Users(c *gin.Context) {
	w := workspaceOf(c)
	if q := c.Request.URL.Query(); q.Has("q") || q.Has("admitted") || q.Has("batch") {
		var query dto.UserFilterQuery
		// an unknown admission value falls back to all
		_ = c.ShouldBindQuery(&query)
		w.SetUserFilter(filters.UserFilter{
			Search:   query.Search,
			Admitted: filters.ParseAdmission(query.Admitted),
			Batch:    query.Batch,
		})
	}

	p := v.page(c, "Users", "users")
	f := w.UserFilter()
	users, err := load(c.Request.Context(), w.Users)
	if err != nil {
		status := formError(&p, err)
		c.HTML(status, "users.html", usersPage{Page: p, Filter: f})
		return
	}

	c.HTML(http.StatusOK, "users.html", usersPage{
		Page:   p,
		Filter: f,
		Users:  filters.Users(users, f),
		Total:  len(users),
	})
}

// EditUser opens the editor on one student.
func (v *ViewController) EditUser(c *gin.Context) {
	w := workspaceOf(c)
	user, err := v.svc.Users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.fail(c, v.page(c, "Edit user", "users"), err, "/users")
		return
	}

	draft := user.Draft()
	w.UserEditor.Open(draft.Clone())
	c.HTML(http.StatusOK, "user_edit.html", userEditPage{
		Page:  v.page(c, "Edit user", "users"),
		User:  user,
		Draft: draft,
	})
}

// SaveUser writes the posted access fields.
func (v *ViewController) SaveUser(c *gin.Context) {
	w := workspaceOf(c)
	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		v.fail(c, v.page(c, "Edit user", "users"), err, "/users")
		return
	}

	ensureOpen(w.UserEditor, form.ID, func() *models.UserDraft { return &models.UserDraft{ID: form.ID} })
	_ = w.UserEditor.Update(func(d *models.UserDraft) {
		d.UserAccess = form.UserAccess
		d.SessionID = form.SessionID
		d.EndSubs = form.EndSubs
		d.IsAdmitted = form.IsAdmitted
	})

	_, err := w.UserEditor.Save(c.Request.Context())
	if err = v.finishMutation(c, err, "/users", "User saved."); err == nil {
		return
	}

	p := v.page(c, "Edit user", "users")
	status := formError(&p, err)
	draft, _ := w.UserEditor.Current()
	user, _ := v.svc.Users.GetUser(c.Request.Context(), form.ID)
	c.HTML(status, "user_edit.html", userEditPage{Page: p, User: user, Draft: draft})
}

// CancelUser closes the user editor without writing.
func (v *ViewController) CancelUser(c *gin.Context) {
	workspaceOf(c).UserEditor.Cancel()
	redirect(c, "/users")
}
