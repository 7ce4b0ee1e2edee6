package models

import (
	"time"

	"github.com/yigit/portaladmin/internal/pkg/validation"
)

// Course groups lectures; lectures live in the course's sub-collection.
type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// CourseFromDocument maps a stored document onto a Course.
func CourseFromDocument(id string, data map[string]any) Course {
	return Course{
		ID:          id,
		Title:       stringOr(data, "title", ""),
		Description: stringOr(data, "description", ""),
		Category:    stringOr(data, "category", ""),
		CreatedAt:   timeOr(data, "createdAt"),
	}
}

func (c Course) Draft() *CourseDraft {
	return &CourseDraft{ID: c.ID, Title: c.Title, Description: c.Description, Category: c.Category}
}

// CourseDraft is the editable part of a course.
type CourseDraft struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (d *CourseDraft) RecordID() string { return d.ID }

func (d *CourseDraft) Validate() error { return validation.Struct(d) }

func (d *CourseDraft) Clone() *CourseDraft {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Fields returns the editable fields in their stored form.
func (d *CourseDraft) Fields() map[string]any {
	return map[string]any{
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
	}
}
