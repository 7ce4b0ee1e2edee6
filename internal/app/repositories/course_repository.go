package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
	"github.com/yigit/portaladmin/internal/pkg/logger"
)

// CourseRepository handles course documents
type CourseRepository struct {
	store docstore.Store
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(store docstore.Store) *CourseRepository {
	return &CourseRepository{store: store}
}

// ListCourses returns all courses in store order
func (r *CourseRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	docs, err := r.store.List(ctx, models.CollectionCourses, docstore.Query{})
	if err != nil {
		logger.Error().Err(err).Msg("Error listing courses")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	courses := make([]models.Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, models.CourseFromDocument(d.ID, d.Data))
	}
	return courses, nil
}

// GetCourse retrieves a course by ID
func (r *CourseRepository) GetCourse(ctx context.Context, id string) (models.Course, error) {
	doc, err := r.store.Get(ctx, models.CollectionCourses, id)
	if err != nil {
		return models.Course{}, notFound(err, apperrors.ErrCourseNotFound)
	}
	return models.CourseFromDocument(doc.ID, doc.Data), nil
}

// CreateCourse stores a new course and returns its ID
func (r *CourseRepository) CreateCourse(ctx context.Context, fields map[string]any) (string, error) {
	id, err := r.store.Create(ctx, models.CollectionCourses, fields)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating course")
		return "", fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// UpdateCourse merges fields into a course document
func (r *CourseRepository) UpdateCourse(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, models.CollectionCourses, id, fields); err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error updating course")
		return notFound(err, apperrors.ErrCourseNotFound)
	}
	return nil
}

// DeleteCourse removes a course document. Its lectures are not touched.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.CollectionCourses, id); err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error deleting course")
		return notFound(err, apperrors.ErrCourseNotFound)
	}
	return nil
}
