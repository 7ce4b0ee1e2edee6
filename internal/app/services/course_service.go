package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/repositories"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/logger"
)

// CourseService defines course operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (models.Course, error)
	// SaveCourse creates the course when the draft has no id, otherwise it
	// updates the editable fields. It returns the course id.
	SaveCourse(ctx context.Context, draft *models.CourseDraft) (string, error)
	// DeleteCourse deletes the course's lectures, then the course.
	DeleteCourse(ctx context.Context, id string) error
}

type courseServiceImpl struct {
	courseRepo  *repositories.CourseRepository
	lectureRepo *repositories.LectureRepository
	now         Clock
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, lectureRepo *repositories.LectureRepository, clock Clock) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, lectureRepo: lectureRepo, now: clock}
}

func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	return courses, loadErr(err)
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id string) (models.Course, error) {
	return s.courseRepo.GetCourse(ctx, id)
}

func (s *courseServiceImpl) SaveCourse(ctx context.Context, draft *models.CourseDraft) (string, error) {
	if draft == nil {
		return "", fmt.Errorf("%w: course draft is nil", apperrors.ErrValidationFailed)
	}
	if err := draft.Validate(); err != nil {
		return "", err
	}

	fields := draft.Fields()
	if draft.ID != "" {
		return draft.ID, mutationErr(s.courseRepo.UpdateCourse(ctx, draft.ID, fields))
	}

	fields["createdAt"] = s.now().UTC()
	id, err := s.courseRepo.CreateCourse(ctx, fields)
	return id, mutationErr(err)
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	if _, err := s.courseRepo.GetCourse(ctx, id); err != nil {
		return mutationErr(err)
	}

	lectures, err := s.lectureRepo.ListLectures(ctx, id)
	if err != nil {
		return mutationErr(err)
	}
	for _, l := range lectures {
		err := s.lectureRepo.DeleteLecture(ctx, id, l.ID)
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return mutationErr(fmt.Errorf("deleting lecture %s of course %s: %w", l.ID, id, err))
		}
	}
	if len(lectures) > 0 {
		logger.Info().Str("courseID", id).Int("lectures", len(lectures)).Msg("Deleted course lectures")
	}

	return mutationErr(s.courseRepo.DeleteCourse(ctx, id))
}
