package services

import (
	"context"
	"fmt"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/repositories"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// LectureService defines lecture operations within a course
type LectureService interface {
	ListLectures(ctx context.Context, courseID string) ([]models.Lecture, error)
	GetLecture(ctx context.Context, courseID, id string) (models.Lecture, error)
	// SaveLecture creates or updates a lecture; a new lecture is stamped
	// with date_posted.
	SaveLecture(ctx context.Context, draft *models.LectureDraft) (string, error)
	DeleteLecture(ctx context.Context, courseID, id string) error
}

type lectureServiceImpl struct {
	courseRepo  *repositories.CourseRepository
	lectureRepo *repositories.LectureRepository
	now         Clock
}

// NewLectureService creates a new lecture service instance
func NewLectureService(courseRepo *repositories.CourseRepository, lectureRepo *repositories.LectureRepository, clock Clock) LectureService {
	return &lectureServiceImpl{courseRepo: courseRepo, lectureRepo: lectureRepo, now: clock}
}

func (s *lectureServiceImpl) ListLectures(ctx context.Context, courseID string) ([]models.Lecture, error) {
	lectures, err := s.lectureRepo.ListLectures(ctx, courseID)
	return lectures, loadErr(err)
}

func (s *lectureServiceImpl) GetLecture(ctx context.Context, courseID, id string) (models.Lecture, error) {
	return s.lectureRepo.GetLecture(ctx, courseID, id)
}

func (s *lectureServiceImpl) SaveLecture(ctx context.Context, draft *models.LectureDraft) (string, error) {
	if draft == nil {
		return "", fmt.Errorf("%w: lecture draft is nil", apperrors.ErrValidationFailed)
	}
	if err := draft.Validate(); err != nil {
		return "", err
	}

	fields := draft.Fields()
	if draft.ID != "" {
		return draft.ID, mutationErr(s.lectureRepo.UpdateLecture(ctx, draft.CourseID, draft.ID, fields))
	}

	// No orphan lectures under a course that does not exist.
	if _, err := s.courseRepo.GetCourse(ctx, draft.CourseID); err != nil {
		return "", mutationErr(err)
	}
	fields["date_posted"] = s.now().UTC()
	id, err := s.lectureRepo.CreateLecture(ctx, draft.CourseID, fields)
	return id, mutationErr(err)
}

func (s *lectureServiceImpl) DeleteLecture(ctx context.Context, courseID, id string) error {
	return mutationErr(s.lectureRepo.DeleteLecture(ctx, courseID, id))
}
