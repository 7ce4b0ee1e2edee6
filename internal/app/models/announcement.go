package models

import (
	"time"
	"unicode/utf8"

	"github.com/yigit/portaladmin/internal/pkg/validation"
)

// ExcerptLength is the number of characters of content shown on a card.
const ExcerptLength = 120

// Announcement is a post shown to students.
type Announcement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"imageUrl"`
	Author      string     `json:"author"`
	PostDate    *time.Time `json:"postDate,omitempty"`
	IsImportant bool       `json:"isImportant"`
}

// AnnouncementFromDocument maps a stored document onto an Announcement.
func AnnouncementFromDocument(id string, data map[string]any) Announcement {
	return Announcement{
		ID:          id,
		Title:       stringOr(data, "title", ""),
		Content:     stringOr(data, "content", ""),
		ImageURL:    stringOr(data, "imageUrl", ""),
		Author:      stringOr(data, "author", ""),
		PostDate:    timeOr(data, "postDate"),
		IsImportant: boolOr(data, "isImportant", false),
	}
}

// Excerpt shortens the content to ExcerptLength characters followed by "...".
func (a Announcement) Excerpt() string {
	if utf8.RuneCountInString(a.Content) <= ExcerptLength {
		return a.Content
	}
	return string([]rune(a.Content)[:ExcerptLength]) + "..."
}

func (a Announcement) Draft() *AnnouncementDraft {
	return &AnnouncementDraft{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		Author:      a.Author,
		IsImportant: a.IsImportant,
	}
}

// AnnouncementDraft is the editable part of an announcement. PostDate is
// only honoured on create.
type AnnouncementDraft struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"notblank"`
	Content     string     `json:"content" validate:"notblank"`
	ImageURL    string     `json:"imageUrl"`
	Author      string     `json:"author"`
	IsImportant bool       `json:"isImportant"`
	PostDate    *time.Time `json:"postDate,omitempty"`
}

func (d *AnnouncementDraft) RecordID() string { return d.ID }

func (d *AnnouncementDraft) Validate() error { return validation.Struct(d) }

func (d *AnnouncementDraft) Clone() *AnnouncementDraft {
	if d == nil {
		return nil
	}
	c := *d
	if d.PostDate != nil {
		t := *d.PostDate
		c.PostDate = &t
	}
	return &c
}

// Fields returns the editable fields in their stored form.
func (d *AnnouncementDraft) Fields() map[string]any {
	return map[string]any{
		"title":       d.Title,
		"content":     d.Content,
		"imageUrl":    d.ImageURL,
		"author":      d.Author,
		"isImportant": d.IsImportant,
	}
}
