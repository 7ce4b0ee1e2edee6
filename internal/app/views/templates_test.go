package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/app/models"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{
		"login.html", "dashboard.html", "users.html", "user_edit.html", "courses.html", "course_edit.html",
		"lecture_edit.html", "announcements.html", "announcement_edit.html", "confirm_delete.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestCoursesPageRendersExpandedLectures(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	posted := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "courses.html", coursesPage{
		Page: Page{Title: "Courses", Active: "courses", Identity: models.RosterEntry{ID: "1", Name: "Alice"}},
		Courses: []courseRow{
			{Course: models.Course{ID: "c1", Title: "Go <basics>"}, Expanded: true, Access: models.AccessOnsite,
				Lectures: []models.Lecture{{ID: "l1", CourseID: "c1", Title: "Campus lab", DatePosted: &posted, AccessBy: []string{models.AccessOnsite}}}},
			{Course: models.Course{ID: "c2", Title: "Closed"}},
		},
		AccessChoices: []string{"all", models.AccessOnline, models.AccessOnsite},
	})
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "Go &lt;basics&gt;")
	assert.Contains(t, body, "Campus lab")
	assert.Contains(t, body, "/courses/c1/lectures/l1/edit")
	assert.NotContains(t, body, "/courses/c2/lectures/new")
	assert.Contains(t, body, "Alice")
}
