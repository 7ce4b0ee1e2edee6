package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/loader"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/repositories"
	"github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
)

func newWorkspace(t *testing.T) (*Workspace, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	svc := services.NewServices(repositories.NewRepositories(store), nil, nil)
	w := New(svc, models.RosterEntry{ID: "1", Name: "Alice"}, time.Second)
	t.Cleanup(w.Close)
	return w, store
}

func TestCreateThenReloadShowsRecord(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkspace(t)

	w.AnnouncementEditor.Open(&models.AnnouncementDraft{})
	require.NoError(t, w.AnnouncementEditor.Update(func(d *models.AnnouncementDraft) {
		d.Title = "Exam week"
		d.Content = "Timetable attached"
		d.Author = "Registry"
		d.IsImportant = true
	}))
	id, err := w.AnnouncementEditor.Save(ctx)
	require.NoError(t, err)

	snap := w.Announcements.Snapshot()
	require.True(t, snap.Loaded)
	require.Len(t, snap.Items, 1)
	got := snap.Items[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Exam week", got.Title)
	assert.Equal(t, "Timetable attached", got.Content)
	assert.Equal(t, "Registry", got.Author)
	assert.True(t, got.IsImportant)
	assert.NotNil(t, got.PostDate)
}

func TestDeleteThenReloadDropsRecord(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkspace(t)

	w.CourseEditor.Open(&models.CourseDraft{Title: "Go"})
	id, err := w.CourseEditor.Save(ctx)
	require.NoError(t, err)
	require.Len(t, w.Courses.Snapshot().Items, 1)

	w.ExpandCourse(id)
	w.SetLectureAccess(id, models.AccessOnline)
	w.LectureEditor.Open(&models.LectureDraft{CourseID: id, Title: "Week 1"})
	_, err = w.LectureEditor.Save(ctx)
	require.NoError(t, err)
	require.Len(t, w.Lectures(id).Snapshot().Items, 1)

	err = w.CourseEditor.Delete(ctx, &models.CourseDraft{ID: id}, false)
	require.ErrorIs(t, err, apperrors.ErrConfirmationRequired)
	require.Len(t, w.Courses.Snapshot().Items, 1)

	require.NoError(t, w.CourseEditor.Delete(ctx, &models.CourseDraft{ID: id}, true))
	assert.Empty(t, w.Courses.Snapshot().Items)
	assert.False(t, w.Expanded(id))
	assert.Equal(t, filters.AccessAll, w.LectureAccess(id))
	assert.False(t, w.Lectures(id).Snapshot().Loaded)
}

func TestUserEditorRecordsIdentity(t *testing.T) {
	ctx := context.Background()
	w, store := newWorkspace(t)
	id, err := store.Create(ctx, "users", map[string]any{"user_type": "Student", "fullname": "Ama"})
	require.NoError(t, err)

	users, err := w.Users.Load(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	w.UserEditor.Open(users[0].Draft())
	require.NoError(t, w.UserEditor.Update(func(d *models.UserDraft) { d.IsAdmitted = true }))
	_, err = w.UserEditor.Save(ctx)
	require.NoError(t, err)

	doc, err := store.Get(ctx, "users", id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", doc.Data["updatedBy"])
	assert.True(t, w.Users.Snapshot().Items[0].IsAdmitted)

	assert.ErrorIs(t, w.UserEditor.Delete(ctx, users[0].Draft(), true), apperrors.ErrNotSupported)
}

func TestFilterState(t *testing.T) {
	w, _ := newWorkspace(t)
	assert.Equal(t, filters.AdmissionAll, w.UserFilter().Admitted)

	w.SetUserFilter(filters.UserFilter{Search: "ama", Admitted: filters.AdmissionAdmitted})
	assert.Equal(t, "ama", w.UserFilter().Search)

	w.SetImportantOnly(true)
	assert.True(t, w.ImportantOnly())

	assert.True(t, w.ToggleCourse("c1"))
	assert.Equal(t, []string{"c1"}, w.ExpandedCourses())
	assert.False(t, w.ToggleCourse("c1"))
	assert.Empty(t, w.ExpandedCourses())

	w.SetFlash("Course saved.")
	assert.Equal(t, "Course saved.", w.TakeFlash())
	assert.Empty(t, w.TakeFlash())
}

func TestCloseStopsLoaders(t *testing.T) {
	w, _ := newWorkspace(t)
	lectures := w.Lectures("c1")
	w.Close()

	_, err := w.Users.Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrClosed)
	_, err = lectures.Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrClosed)
	_, err = w.Lectures("c2").Load(context.Background())
	assert.ErrorIs(t, err, loader.ErrClosed)
}
