// Package filters holds the list derivations applied to loaded records.
// Every function returns a new slice and leaves its input untouched; a
// record is kept only if it satisfies every active predicate.
package filters

import (
	"strings"

	"github.com/yigit/portaladmin/internal/app/models"
)

// Admission selects users by their admission flag
type Admission string

const (
	AdmissionAll         Admission = "all"
	AdmissionAdmitted    Admission = "admitted"
	AdmissionNotAdmitted Admission = "notAdmitted"
)

// ParseAdmission maps form input onto an Admission, defaulting to all.
func ParseAdmission(s string) Admission {
	switch Admission(strings.TrimSpace(s)) {
	case AdmissionAdmitted:
		return AdmissionAdmitted
	case AdmissionNotAdmitted:
		return AdmissionNotAdmitted
	default:
		return AdmissionAll
	}
}

// UserFilter is the users view filter state
type UserFilter struct {
	Search   string
	Admitted Admission
	Batch    string
}

// Active reports whether any predicate narrows the list.
func (f UserFilter) Active() bool {
	return f.Search != "" || (f.Admitted != "" && f.Admitted != AdmissionAll) || strings.TrimSpace(f.Batch) != ""
}

// MatchesText is a case-insensitive substring match over all displayed values.
func (f UserFilter) MatchesText(u models.User) bool {
	return strings.Contains(u.SearchText(), strings.ToLower(f.Search))
}

// MatchesAdmission applies the three-way admission choice.
func (f UserFilter) MatchesAdmission(u models.User) bool {
	switch f.Admitted {
	case AdmissionAdmitted:
		return u.IsAdmitted
	case AdmissionNotAdmitted:
		return !u.IsAdmitted
	default:
		return true
	}
}

// MatchesBatch is a case-insensitive substring match against the user's
// batch. A blank filter matches everything.
func (f UserFilter) MatchesBatch(u models.User) bool {
	if strings.TrimSpace(f.Batch) == "" {
		return true
	}
	return strings.Contains(u.Batch(), strings.ToLower(f.Batch))
}

// Matches reports whether u satisfies every predicate.
func (f UserFilter) Matches(u models.User) bool {
	return f.MatchesText(u) && f.MatchesAdmission(u) && f.MatchesBatch(u)
}

// Users returns the users that match f, in their original order.
func Users(users []models.User, f UserFilter) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if f.Matches(u) {
			out = append(out, u)
		}
	}
	return out
}

// Announcements keeps every announcement, or only important ones.
func Announcements(posts []models.Announcement, importantOnly bool) []models.Announcement {
	out := make([]models.Announcement, 0, len(posts))
	for _, p := range posts {
		if !importantOnly || p.IsImportant {
			out = append(out, p)
		}
	}
	return out
}

// AccessAll disables the lecture access filter
const AccessAll = "all"

// AccessChoices are the options offered for the lecture access filter.
var AccessChoices = []string{AccessAll, models.AccessOnline, models.AccessOnsite}

// Lectures keeps the lectures tagged with access; "all" or "" keeps all.
func Lectures(lectures []models.Lecture, access string) []models.Lecture {
	out := make([]models.Lecture, 0, len(lectures))
	for _, l := range lectures {
		if access == "" || access == AccessAll || l.HasAccess(access) {
			out = append(out, l)
		}
	}
	return out
}
