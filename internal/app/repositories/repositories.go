package repositories

import (
	"errors"
	"fmt"

	"github.com/yigit/portaladmin/internal/pkg/docstore"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	CourseRepository       *CourseRepository
	LectureRepository      *LectureRepository
	AnnouncementRepository *AnnouncementRepository
}

// NewRepositories initializes all repositories over one document store
func NewRepositories(store docstore.Store) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(store),
		CourseRepository:       NewCourseRepository(store),
		LectureRepository:      NewLectureRepository(store),
		AnnouncementRepository: NewAnnouncementRepository(store),
	}
}

// notFound translates a store miss into the record's not-found error,
// which also matches apperrors.ErrResourceNotFound.
func notFound(err error, recordErr error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", recordErr, err)
	}
	return err
}
