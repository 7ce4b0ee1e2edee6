package dto

import "time"

// AnnouncementFilterQuery toggles the importance filter
type AnnouncementFilterQuery struct {
	ImportantOnly bool `form:"important" json:"important"`
}

// AnnouncementRequest carries the editable announcement fields
type AnnouncementRequest struct {
	Title       string     `json:"title" example:"Exam timetable"`
	Content     string     `json:"content" example:"The timetable is out."`
	ImageURL    string     `json:"imageUrl" example:"https://cdn.example.com/t.png"`
	Author      string     `json:"author" example:"Registry"`
	IsImportant bool       `json:"isImportant" example:"true"`
	PostDate    *time.Time `json:"postDate,omitempty"`
}
