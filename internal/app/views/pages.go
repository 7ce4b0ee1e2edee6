package views

import (
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/models"
)

// Page is the part every authenticated page shares: header, navigation and
// the message area.
type Page struct {
	Title    string
	Active   string
	Identity models.RosterEntry
	Flash    string
	Error    string
}

type loginPage struct {
	ID    string
	Name  string
	Error string
}

type collectionSummary struct {
	Loaded bool
	Count  int
}

type dashboardPage struct {
	Page
	Users         collectionSummary
	Courses       collectionSummary
	Announcements collectionSummary
}

type usersPage struct {
	Page
	Filter filters.UserFilter
	Users  []models.User
	Total  int
}

type userEditPage struct {
	Page
	User  models.User
	Draft *models.UserDraft
}

type courseRow struct {
	models.Course
	Expanded   bool
	Access     string
	Lectures   []models.Lecture
	LectureErr string
}

type coursesPage struct {
	Page
	Courses       []courseRow
	AccessChoices []string
}

type courseEditPage struct {
	Page
	Draft *models.CourseDraft
}

type lectureEditPage struct {
	Page
	Course models.Course
	Draft  *models.LectureDraft
}

type announcementsPage struct {
	Page
	ImportantOnly bool
	Announcements []models.Announcement
}

type announcementEditPage struct {
	Page
	Draft *models.AnnouncementDraft
}

type confirmPage struct {
	Page
	Kind   string
	Name   string
	Note   string
	Action string
	Back   string
}

type errorPage struct {
	Page
	Back string
}
