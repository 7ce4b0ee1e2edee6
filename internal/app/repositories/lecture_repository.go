package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
	"github.com/yigit/portaladmin/internal/pkg/logger"
)

// LectureRepository handles the lectures sub-collection of each course
type LectureRepository struct {
	store docstore.Store
}

// NewLectureRepository creates a new LectureRepository
func NewLectureRepository(store docstore.Store) *LectureRepository {
	return &LectureRepository{store: store}
}

// LecturesPath is the sub-collection holding a course's lectures
func LecturesPath(courseID string) docstore.Path {
	return docstore.Collection(models.CollectionCourses, courseID, models.CollectionLectures)
}

// ListLectures returns the lectures of one course
func (r *LectureRepository) ListLectures(ctx context.Context, courseID string) ([]models.Lecture, error) {
	docs, err := r.store.List(ctx, LecturesPath(courseID), docstore.Query{})
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID).Msg("Error listing lectures")
		return nil, fmt.Errorf("error listing lectures: %w", err)
	}

	lectures := make([]models.Lecture, 0, len(docs))
	for _, d := range docs {
		lectures = append(lectures, models.LectureFromDocument(courseID, d.ID, d.Data))
	}
	return lectures, nil
}

// GetLecture retrieves one lecture of a course
func (r *LectureRepository) GetLecture(ctx context.Context, courseID, id string) (models.Lecture, error) {
	doc, err := r.store.Get(ctx, LecturesPath(courseID), id)
	if err != nil {
		return models.Lecture{}, notFound(err, apperrors.ErrLectureNotFound)
	}
	return models.LectureFromDocument(courseID, doc.ID, doc.Data), nil
}

// CreateLecture stores a new lecture under a course
func (r *LectureRepository) CreateLecture(ctx context.Context, courseID string, fields map[string]any) (string, error) {
	id, err := r.store.Create(ctx, LecturesPath(courseID), fields)
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID).Msg("Error creating lecture")
		return "", fmt.Errorf("error creating lecture: %w", err)
	}
	return id, nil
}

// UpdateLecture merges fields into a lecture document
func (r *LectureRepository) UpdateLecture(ctx context.Context, courseID, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, LecturesPath(courseID), id, fields); err != nil {
		logger.Error().Err(err).Str("courseID", courseID).Str("lectureID", id).Msg("Error updating lecture")
		return notFound(err, apperrors.ErrLectureNotFound)
	}
	return nil
}

// DeleteLecture removes a lecture document
func (r *LectureRepository) DeleteLecture(ctx context.Context, courseID, id string) error {
	if err := r.store.Delete(ctx, LecturesPath(courseID), id); err != nil {
		logger.Error().Err(err).Str("courseID", courseID).Str("lectureID", id).Msg("Error deleting lecture")
		return notFound(err, apperrors.ErrLectureNotFound)
	}
	return nil
}
