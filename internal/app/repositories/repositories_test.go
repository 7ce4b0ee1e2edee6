package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
)

func TestListStudentsOnlyReturnsStudents(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	_, err := store.Create(ctx, "users", map[string]any{"user_type": "Student", "fullname": "Ama"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "users", map[string]any{"user_type": "Admin", "fullname": "Root"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "users", map[string]any{"fullname": "No type"})
	require.NoError(t, err)

	users, err := NewUserRepository(store).ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ama", users[0].FullName)
	assert.Equal(t, "N/A", users[0].Email)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(docstore.NewMemoryStore())
	err := repo.UpdateUser(context.Background(), "missing", map[string]any{"isAdmitted": true})
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	_, err = repo.GetUser(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestLecturesAreScopedToCourse(t *testing.T) {
	ctx := context.Background()
	repo := NewLectureRepository(docstore.NewMemoryStore())

	id, err := repo.CreateLecture(ctx, "c1", map[string]any{"title": "Intro", "access_by": []any{"Online"}})
	require.NoError(t, err)

	lectures, err := repo.ListLectures(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, lectures, 1)
	assert.Equal(t, id, lectures[0].ID)
	assert.Equal(t, "c1", lectures[0].CourseID)

	other, err := repo.ListLectures(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, other)

	err = repo.DeleteLecture(ctx, "c2", id)
	assert.True(t, errors.Is(err, apperrors.ErrLectureNotFound))
	assert.Equal(t, docstore.Path("courses/c1/lectures"), LecturesPath("c1"))
}

func TestAnnouncementsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewAnnouncementRepository(docstore.NewMemoryStore())
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"old", "new", "mid"} {
		offset := map[int]time.Duration{0: 0, 1: 48 * time.Hour, 2: 24 * time.Hour}[i]
		_, err := repo.CreateAnnouncement(ctx, map[string]any{"title": title, "postDate": base.Add(offset)})
		require.NoError(t, err)
	}

	posts, err := repo.ListAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].Title)
	assert.Equal(t, "mid", posts[1].Title)
	assert.Equal(t, "old", posts[2].Title)
}

func TestCourseRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCourseRepository(docstore.NewMemoryStore())

	id, err := repo.CreateCourse(ctx, map[string]any{"title": "Go"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateCourse(ctx, id, map[string]any{"category": "Dev"}))

	c, err := repo.GetCourse(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Go", c.Title)
	assert.Equal(t, "Dev", c.Category)

	require.NoError(t, repo.DeleteCourse(ctx, id))
	_, err = repo.GetCourse(ctx, id)
	assert.True(t, errors.Is(err, apperrors.ErrCourseNotFound))
}
