package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

func TestUserFromDocumentDefaults(t *testing.T) {
	u := UserFromDocument("u1", map[string]any{})

	assert.Equal(t, User{
		ID:         "u1",
		SID:        NotAvailable,
		FullName:   NotAvailable,
		Email:      NotAvailable,
		IsAdmitted: false,
		UserType:   NotAvailable,
		UserAccess: NotAvailable,
		Phone:      0,
		EndSubs:    NotAvailable,
		SessionID:  "",
	}, u)
}

func TestUserFromDocumentValues(t *testing.T) {
	u := UserFromDocument("u2", map[string]any{
		"sid":         "S100",
		"fullname":    "Ama Owusu",
		"email":       "",
		"isAdmitted":  true,
		"user_type":   "Student",
		"user_access": "Batch 2 - Onsite",
		"phone":       "0244123456",
		"end_subs":    "Dec 2025",
		"sessionId":   "abc",
	})

	assert.Equal(t, "S100", u.SID)
	assert.Equal(t, NotAvailable, u.Email)
	assert.True(t, u.IsAdmitted)
	assert.EqualValues(t, 244123456, u.Phone)
	assert.Equal(t, "batch 2", u.Batch())
	assert.Equal(t, "abc", u.SessionID)

	assert.EqualValues(t, 55, UserFromDocument("x", map[string]any{"phone": 55.0}).Phone)
	assert.EqualValues(t, 0, UserFromDocument("x", map[string]any{"phone": "n/a"}).Phone)
	assert.False(t, UserFromDocument("x", map[string]any{"isAdmitted": "maybe"}).IsAdmitted)
}

func TestUserSearchText(t *testing.T) {
	u := User{ID: "id9", FullName: "Kofi MENSAH", UserAccess: "Batch 1 - Online", Phone: 42}
	text := u.SearchText()
	assert.Contains(t, text, "kofi mensah")
	assert.Contains(t, text, "batch 1 - online")
	assert.Contains(t, text, "42")
	assert.Equal(t, strings.ToLower(text), text)
}

func TestUserBatchWithoutSeparator(t *testing.T) {
	assert.Equal(t, "n/a", User{UserAccess: NotAvailable}.Batch())
	assert.Equal(t, "", User{UserAccess: "- Online"}.Batch())
}

func TestUserDraftFields(t *testing.T) {
	d := User{ID: "u1", FullName: "Name", UserAccess: "Batch 1", IsAdmitted: true}.Draft()
	require.NoError(t, d.Validate())

	fields := d.Fields()
	assert.Equal(t, map[string]any{
		"user_access": "Batch 1",
		"sessionId":   "",
		"end_subs":    "",
		"isAdmitted":  true,
	}, fields)
	assert.NotContains(t, fields, "fullname")

	assert.Error(t, (&UserDraft{}).Validate())
}

func TestCourseDraftValidate(t *testing.T) {
	err := (&CourseDraft{Title: "  "}).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.EqualError(t, err, "title is required")

	d := Course{ID: "c1", Title: "Go", Category: "Dev"}.Draft()
	assert.NoError(t, d.Validate())
	assert.Equal(t, "c1", d.RecordID())
	assert.NotContains(t, d.Fields(), "createdAt")
}

func TestLectureFromDocument(t *testing.T) {
	posted := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l := LectureFromDocument("c1", "l1", map[string]any{
		"title":       "Intro",
		"date_posted": posted,
		"access_by":   []any{"Online", " ", "Onsite", 3},
	})
	assert.Equal(t, []string{"Online", "Onsite"}, l.AccessBy)
	assert.True(t, l.HasAccess("Onsite"))
	assert.False(t, l.HasAccess("onsite"))
	assert.Equal(t, posted, *l.DatePosted)
	assert.Equal(t, "Online, Onsite", l.AccessText())

	empty := LectureFromDocument("c1", "l2", map[string]any{})
	assert.Equal(t, []string{}, empty.AccessBy)
	assert.Nil(t, empty.DatePosted)
}

func TestLectureDraftFieldsDropsBlankTags(t *testing.T) {
	d := &LectureDraft{CourseID: "c1", Title: "T", AccessBy: ParseTags("Online, ,Onsite,")}
	require.NoError(t, d.Validate())
	assert.Equal(t, []any{"Online", "Onsite"}, d.Fields()["access_by"])

	assert.Error(t, (&LectureDraft{Title: "T"}).Validate())
}

func TestAnnouncementDraftValidate(t *testing.T) {
	assert.Error(t, (&AnnouncementDraft{Title: "A"}).Validate())
	assert.Error(t, (&AnnouncementDraft{Content: "B"}).Validate())
	assert.NoError(t, (&AnnouncementDraft{Title: "A", Content: "B"}).Validate())
}

func TestAnnouncementExcerpt(t *testing.T) {
	short := Announcement{Content: "hello"}
	assert.Equal(t, "hello", short.Excerpt())

	long := Announcement{Content: strings.Repeat("é", ExcerptLength+5)}
	assert.Equal(t, strings.Repeat("é", ExcerptLength)+"...", long.Excerpt())
}

func TestAnnouncementFromDocumentTimestampString(t *testing.T) {
	a := AnnouncementFromDocument("p1", map[string]any{"postDate": "2024-02-03T04:05:06Z", "isImportant": true})
	require.NotNil(t, a.PostDate)
	assert.Equal(t, 2024, a.PostDate.Year())
	assert.True(t, a.IsImportant)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, NotAvailable, FormatDate(nil))
	ts := time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-01-02", FormatDate(&ts))
}

func TestLoadRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1","name":"Alice"}]`), 0o600))

	entries, err := LoadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, []RosterEntry{{ID: "1", Name: "Alice"}}, entries)

	_, err = LoadRoster(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestDraftClonesShareNothing(t *testing.T) {
	posted := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	lecture := &LectureDraft{ID: "l1", CourseID: "c1", Title: "Week 1", AccessBy: []string{AccessOnline}}
	post := &AnnouncementDraft{ID: "a1", Title: "Exams", PostDate: &posted}

	lc := lecture.Clone()
	lc.AccessBy[0] = AccessOnsite
	lc.Title = "Week 2"
	assert.Equal(t, []string{AccessOnline}, lecture.AccessBy)
	assert.Equal(t, "Week 1", lecture.Title)

	pc := post.Clone()
	*pc.PostDate = posted.Add(time.Hour)
	assert.Equal(t, posted, *post.PostDate)

	assert.Nil(t, (*CourseDraft)(nil).Clone())
	assert.Equal(t, &UserDraft{ID: "u1", IsAdmitted: true}, (&UserDraft{ID: "u1", IsAdmitted: true}).Clone())
}
