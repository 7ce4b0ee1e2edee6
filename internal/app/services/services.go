package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/repositories"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// Services defined in this package:
// - AuthService: checks roster credentials
// - UserService: lists students and updates their access fields
// - CourseService: course CRUD, deleting a course deletes its lectures
// - LectureService: lecture CRUD inside a course
// - AnnouncementService: announcement CRUD

// Services bundles every service built over one set of repositories
type Services struct {
	Auth          AuthService
	Users         UserService
	Courses       CourseService
	Lectures      LectureService
	Announcements AnnouncementService
}

// Clock returns the current time; tests replace it.
type Clock func() time.Time

// NewServices wires the services
func NewServices(repos *repositories.Repositories, roster []models.RosterEntry, clock Clock) *Services {
	if clock == nil {
		clock = time.Now
	}
	return &Services{
		Auth:          NewAuthService(roster),
		Users:         NewUserService(repos.UserRepository, clock),
		Courses:       NewCourseService(repos.CourseRepository, repos.LectureRepository, clock),
		Lectures:      NewLectureService(repos.CourseRepository, repos.LectureRepository, clock),
		Announcements: NewAnnouncementService(repos.AnnouncementRepository, clock),
	}
}

// loadErr marks a failed read as a load failure
func loadErr(err error) error {
	if err == nil || errors.Is(err, apperrors.ErrLoadFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", apperrors.ErrLoadFailed, err)
}

// mutationErr marks a failed write as a mutation failure. Validation and
// not-found errors pass through unchanged.
func mutationErr(err error) error {
	if err == nil ||
		errors.Is(err, apperrors.ErrResourceNotFound) ||
		errors.Is(err, apperrors.ErrValidationFailed) ||
		errors.Is(err, apperrors.ErrMutationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", apperrors.ErrMutationFailed, err)
}
