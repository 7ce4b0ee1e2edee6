// Package workspace holds everything one logged-in operator is looking at:
// a loader per collection, an editor per record kind and the view filters.
// A workspace lives exactly as long as its session.
package workspace

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yigit/portaladmin/internal/app/editor"
	"github.com/yigit/portaladmin/internal/app/filters"
	"github.com/yigit/portaladmin/internal/app/loader"
	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/services"
)

// Workspace is safe for concurrent use.
type Workspace struct {
	svc      *services.Services
	identity models.RosterEntry
	timeout  time.Duration

	Users         *loader.Loader[models.User]
	Courses       *loader.Loader[models.Course]
	Announcements *loader.Loader[models.Announcement]

	UserEditor         *editor.Editor[*models.UserDraft]
	CourseEditor       *editor.Editor[*models.CourseDraft]
	LectureEditor      *editor.Editor[*models.LectureDraft]
	AnnouncementEditor *editor.Editor[*models.AnnouncementDraft]

	mu            sync.Mutex
	lectures      map[string]*loader.Loader[models.Lecture]
	expanded      map[string]bool
	lectureAccess map[string]string
	userFilter    filters.UserFilter
	importantOnly bool
	flash         string
	closed        bool
}

// New builds a workspace for identity. timeout bounds each collection
// fetch; zero means no bound beyond the request context.
func New(svc *services.Services, identity models.RosterEntry, timeout time.Duration) *Workspace {
	w := &Workspace{
		svc:           svc,
		identity:      identity,
		timeout:       timeout,
		lectures:      make(map[string]*loader.Loader[models.Lecture]),
		expanded:      make(map[string]bool),
		lectureAccess: make(map[string]string),
		userFilter:    filters.UserFilter{Admitted: filters.AdmissionAll},
	}

	w.Users = loader.New[models.User](svc.Users.ListStudents, w.loaderOptions()...)
	w.Courses = loader.New[models.Course](svc.Courses.ListCourses, w.loaderOptions()...)
	w.Announcements = loader.New[models.Announcement](svc.Announcements.ListAnnouncements, w.loaderOptions()...)

	w.UserEditor = editor.New[*models.UserDraft](
		func(ctx context.Context, d *models.UserDraft) (string, error) {
			return d.ID, svc.Users.UpdateUser(ctx, d, identity.Name)
		},
		nil,
		func(ctx context.Context, _ *models.UserDraft) error { return reload(ctx, w.Users) },
	)

	w.CourseEditor = editor.New[*models.CourseDraft](
		svc.Courses.SaveCourse,
		func(ctx context.Context, d *models.CourseDraft) error {
			if err := svc.Courses.DeleteCourse(ctx, d.ID); err != nil {
				return err
			}
			w.forgetCourse(d.ID)
			return nil
		},
		func(ctx context.Context, _ *models.CourseDraft) error { return reload(ctx, w.Courses) },
	)

	w.LectureEditor = editor.New[*models.LectureDraft](
		svc.Lectures.SaveLecture,
		func(ctx context.Context, d *models.LectureDraft) error {
			return svc.Lectures.DeleteLecture(ctx, d.CourseID, d.ID)
		},
		func(ctx context.Context, d *models.LectureDraft) error {
			return reload(ctx, w.Lectures(d.CourseID))
		},
	)

	w.AnnouncementEditor = editor.New[*models.AnnouncementDraft](
		svc.Announcements.SaveAnnouncement,
		func(ctx context.Context, d *models.AnnouncementDraft) error {
			return svc.Announcements.DeleteAnnouncement(ctx, d.ID)
		},
		func(ctx context.Context, _ *models.AnnouncementDraft) error { return reload(ctx, w.Announcements) },
	)

	return w
}

func (w *Workspace) loaderOptions() []loader.Option {
	if w.timeout <= 0 {
		return nil
	}
	return []loader.Option{loader.WithTimeout(w.timeout)}
}

// reload refetches after a mutation. Being superseded by a newer load is
// not a failure: the newer load will show the change.
func reload[T any](ctx context.Context, l *loader.Loader[T]) error {
	_, err := l.Load(ctx)
	if errors.Is(err, loader.ErrSuperseded) {
		return nil
	}
	return err
}

// Identity is the operator this workspace belongs to.
func (w *Workspace) Identity() models.RosterEntry {
	return w.identity
}

// Lectures returns the loader for one course's lectures, creating it on
// first use. Lectures are only fetched once a course is expanded.
func (w *Workspace) Lectures(courseID string) *loader.Loader[models.Lecture] {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, ok := w.lectures[courseID]
	if !ok {
		l = loader.New[models.Lecture](func(ctx context.Context) ([]models.Lecture, error) {
			return w.svc.Lectures.ListLectures(ctx, courseID)
		}, w.loaderOptions()...)
		if w.closed {
			l.Close()
		}
		w.lectures[courseID] = l
	}
	return l
}

// ToggleCourse flips whether a course is expanded and reports the new state.
func (w *Workspace) ToggleCourse(courseID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expanded[courseID] = !w.expanded[courseID]
	if !w.expanded[courseID] {
		delete(w.expanded, courseID)
		return false
	}
	return true
}

// ExpandCourse marks a course as expanded.
func (w *Workspace) ExpandCourse(courseID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expanded[courseID] = true
}

// Expanded reports whether a course is expanded.
func (w *Workspace) Expanded(courseID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expanded[courseID]
}

// ExpandedCourses lists the expanded course ids in a stable order.
func (w *Workspace) ExpandedCourses() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.expanded))
	for id := range w.expanded {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// forgetCourse drops the lecture state of a deleted course.
func (w *Workspace) forgetCourse(courseID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if l, ok := w.lectures[courseID]; ok {
		l.Close()
		delete(w.lectures, courseID)
	}
	delete(w.expanded, courseID)
	delete(w.lectureAccess, courseID)
}

// LectureAccess is the access filter of one course, "all" by default.
func (w *Workspace) LectureAccess(courseID string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a, ok := w.lectureAccess[courseID]; ok {
		return a
	}
	return filters.AccessAll
}

// SetLectureAccess sets the access filter of one course.
func (w *Workspace) SetLectureAccess(courseID, access string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if access == "" || access == filters.AccessAll {
		delete(w.lectureAccess, courseID)
		return
	}
	w.lectureAccess[courseID] = access
}

// UserFilter returns the users view filter.
func (w *Workspace) UserFilter() filters.UserFilter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.userFilter
}

// SetUserFilter replaces the users view filter.
func (w *Workspace) SetUserFilter(f filters.UserFilter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.userFilter = f
}

// ImportantOnly reports whether the announcements view hides unimportant posts.
func (w *Workspace) ImportantOnly() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.importantOnly
}

// SetImportantOnly toggles the announcements importance filter.
func (w *Workspace) SetImportantOnly(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.importantOnly = v
}

// SetFlash stores a message for the next rendered view.
func (w *Workspace) SetFlash(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flash = msg
}

// TakeFlash returns the pending message and clears it.
func (w *Workspace) TakeFlash() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := w.flash
	w.flash = ""
	return msg
}

// Close cancels every in-flight load and closes the editors. Late
// responses are discarded.
func (w *Workspace) Close() {
	w.mu.Lock()
	w.closed = true
	lectures := make([]*loader.Loader[models.Lecture], 0, len(w.lectures))
	for _, l := range w.lectures {
		lectures = append(lectures, l)
	}
	w.mu.Unlock()

	w.Users.Close()
	w.Courses.Close()
	w.Announcements.Close()
	for _, l := range lectures {
		l.Close()
	}

	w.UserEditor.Cancel()
	w.CourseEditor.Cancel()
	w.LectureEditor.Cancel()
	w.AnnouncementEditor.Cancel()
}
