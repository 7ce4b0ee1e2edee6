package views

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

const postDateLayout = "2006-01-02"

type announcementForm struct {
	ID          string `form:"id"`
	Title       string `form:"title"`
	Content     string `form:"content"`
	ImageURL    string `form:"imageUrl"`
	Author      string `form:"author"`
	IsImportant bool   `form:"isImportant"`
	PostDate    string `form:"postDate"`
}

// postDate parses the optional date field in local time.
func (f announcementForm) postDate() (*time.Time, error) {
	s := strings.TrimSpace(f.PostDate)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(postDateLayout, s, time.Local)
	if err != nil {
		return nil, apperrors.NewValidationError("postDate must be a date like 2025-01-31")
	}
	return &t, nil
}

// Announcements lists posts newest first.
func (v *ViewController) Announcements(c *gin.Context) {
	w := workspaceOf(c)
	p := v.page(c, "Announcements", "announcements")
	importantOnly := w.ImportantOnly()

	posts, err := load(c.Request.Context(), w.Announcements)
	if err != nil {
		status := formError(&p, err)
		c.HTML(status, "announcements.html", announcementsPage{Page: p, ImportantOnly: importantOnly})
		return
	}

	c.HTML(http.StatusOK, "announcements.html", announcementsPage{
		Page:          p,
		ImportantOnly: importantOnly,
		Announcements: filters.Announcements(posts, importantOnly),
	})
}

// FilterAnnouncements sets the importance filter.
func (v *ViewController) FilterAnnouncements(c *gin.Context) {
	var query dto.AnnouncementFilterQuery
	_ = c.ShouldBind(&query)
	workspaceOf(c).SetImportantOnly(query.ImportantOnly)
	redirect(c, "/announcements")
}

// NewAnnouncement opens the editor on a blank announcement.
func (v *ViewController) NewAnnouncement(c *gin.Context) {
	draft := &models.AnnouncementDraft{}
	workspaceOf(c).AnnouncementEditor.Open(draft.Clone())
	c.HTML(http.StatusOK, "announcement_edit.html", announcementEditPage{Page: v.page(c, "New announcement", "announcements"), Draft: draft})
}

// EditAnnouncement opens the editor on an existing announcement.
func (v *ViewController) EditAnnouncement(c *gin.Context) {
	post, err := v.svc.Announcements.GetAnnouncement(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.fail(c, v.page(c, "Edit announcement", "announcements"), err, "/announcements")
		return
	}
	draft := post.Draft()
	workspaceOf(c).AnnouncementEditor.Open(draft.Clone())
	c.HTML(http.StatusOK, "announcement_edit.html", announcementEditPage{Page: v.page(c, "Edit announcement", "announcements"), Draft: draft})
}

// SaveAnnouncement creates or updates the posted announcement.
func (v *ViewController) SaveAnnouncement(c *gin.Context) {
	w := workspaceOf(c)
	var form announcementForm
	if err := c.ShouldBind(&form); err != nil {
		v.fail(c, v.page(c, "Edit announcement", "announcements"), err, "/announcements")
		return
	}

	ensureOpen(w.AnnouncementEditor, form.ID, func() *models.AnnouncementDraft {
		return &models.AnnouncementDraft{ID: form.ID}
	})
	postDate, err := form.postDate()
	_ = w.AnnouncementEditor.Update(func(d *models.AnnouncementDraft) {
		d.Title = form.Title
		d.Content = form.Content
		d.ImageURL = form.ImageURL
		d.Author = form.Author
		d.IsImportant = form.IsImportant
		d.PostDate = postDate
	})

	if err == nil {
		_, err = w.AnnouncementEditor.Save(c.Request.Context())
	}
	if err = v.finishMutation(c, err, "/announcements", "Announcement saved."); err == nil {
		return
	}

	p := v.page(c, "Edit announcement", "announcements")
	status := formError(&p, err)
	draft, _ := w.AnnouncementEditor.Current()
	c.HTML(status, "announcement_edit.html", announcementEditPage{Page: p, Draft: draft})
}

// CancelAnnouncement closes the announcement editor without writing.
func (v *ViewController) CancelAnnouncement(c *gin.Context) {
	workspaceOf(c).AnnouncementEditor.Cancel()
	redirect(c, "/announcements")
}

// ConfirmDeleteAnnouncement asks before deleting an announcement.
func (v *ViewController) ConfirmDeleteAnnouncement(c *gin.Context) {
	post, err := v.svc.Announcements.GetAnnouncement(c.Request.Context(), c.Param("id"))
	if err != nil {
		v.fail(c, v.page(c, "Delete announcement", "announcements"), err, "/announcements")
		return
	}
	c.HTML(http.StatusOK, "confirm_delete.html", announcementConfirm(v.page(c, "Delete announcement", "announcements"), post.ID, post.Title))
}

func announcementConfirm(p Page, id, title string) confirmPage {
	return confirmPage{
		Page:   p,
		Kind:   "announcement",
		Name:   title,
		Action: "/announcements/" + id + "/delete",
		Back:   "/announcements",
	}
}

// DeleteAnnouncement deletes a confirmed announcement.
func (v *ViewController) DeleteAnnouncement(c *gin.Context) {
	w := workspaceOf(c)
	var req dto.DeleteRequest
	_ = c.ShouldBind(&req)

	id := c.Param("id")
	err := w.AnnouncementEditor.Delete(c.Request.Context(), &models.AnnouncementDraft{ID: id}, req.Confirm)
	if err = v.finishMutation(c, err, "/announcements", "Announcement deleted."); err == nil {
		return
	}

	p := v.page(c, "Delete announcement", "announcements")
	status := formError(&p, err)
	c.HTML(status, "confirm_delete.html", announcementConfirm(p, id, id))
}
