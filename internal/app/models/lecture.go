package models

import (
	"strings"
	"time"

	"github.com/yigit/portaladmin/internal/pkg/validation"
)

// Common access tags. Tags are free text; these are the ones offered as
// filter choices.
const (
	AccessOnline = "Online"
	AccessOnsite = "Onsite"
)

// Lecture belongs to exactly one course.
type Lecture struct {
	ID         string     `json:"id"`
	CourseID   string     `json:"courseId"`
	Title      string     `json:"title"`
	Lecturer   string     `json:"lecturer"`
	DatePosted *time.Time `json:"date_posted,omitempty"`
	AccessBy   []string   `json:"access_by"`
	URL        string     `json:"urls"`
}

// LectureFromDocument maps a stored document onto a Lecture.
func LectureFromDocument(courseID, id string, data map[string]any) Lecture {
	return Lecture{
		ID:         id,
		CourseID:   courseID,
		Title:      stringOr(data, "title", ""),
		Lecturer:   stringOr(data, "lecturer", ""),
		DatePosted: timeOr(data, "date_posted"),
		AccessBy:   stringsOf(data, "access_by"),
		URL:        stringOr(data, "urls", ""),
	}
}

// HasAccess reports whether tag is one of the lecture's access tags.
func (l Lecture) HasAccess(tag string) bool {
	for _, t := range l.AccessBy {
		if t == tag {
			return true
		}
	}
	return false
}

// AccessText joins the tags for display and for the edit form.
func (l Lecture) AccessText() string {
	return strings.Join(l.AccessBy, ", ")
}

func (l Lecture) Draft() *LectureDraft {
	return &LectureDraft{
		ID:       l.ID,
		CourseID: l.CourseID,
		Title:    l.Title,
		Lecturer: l.Lecturer,
		AccessBy: append([]string(nil), l.AccessBy...),
		URL:      l.URL,
	}
}

// LectureDraft is the editable part of a lecture.
type LectureDraft struct {
	ID       string   `json:"id"`
	CourseID string   `json:"courseId" validate:"required"`
	Title    string   `json:"title" validate:"notblank"`
	Lecturer string   `json:"lecturer"`
	AccessBy []string `json:"access_by"`
	URL      string   `json:"urls"`
}

func (d *LectureDraft) RecordID() string { return d.ID }

func (d *LectureDraft) Validate() error { return validation.Struct(d) }

func (d *LectureDraft) Clone() *LectureDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.AccessBy = append([]string(nil), d.AccessBy...)
	return &c
}

// Fields returns the editable fields in their stored form. Blank tags are
// dropped.
func (d *LectureDraft) Fields() map[string]any {
	tags := make([]any, 0, len(d.AccessBy))
	for _, t := range d.AccessBy {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return map[string]any{
		"title":     d.Title,
		"lecturer":  d.Lecturer,
		"access_by": tags,
		"urls":      d.URL,
	}
}
