package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
	"github.com/yigit/portaladmin/internal/pkg/logger"
)

// AnnouncementRepository handles announcement ("post") documents
type AnnouncementRepository struct {
	store docstore.Store
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(store docstore.Store) *AnnouncementRepository {
	return &AnnouncementRepository{store: store}
}

// ListAnnouncements returns all announcements, newest post first
func (r *AnnouncementRepository) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	docs, err := r.store.List(ctx, models.CollectionAnnouncements, docstore.Query{}.Order("postDate", true))
	if err != nil {
		logger.Error().Err(err).Msg("Error listing announcements")
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}

	posts := make([]models.Announcement, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, models.AnnouncementFromDocument(d.ID, d.Data))
	}
	return posts, nil
}

// GetAnnouncement retrieves an announcement by ID
func (r *AnnouncementRepository) GetAnnouncement(ctx context.Context, id string) (models.Announcement, error) {
	doc, err := r.store.Get(ctx, models.CollectionAnnouncements, id)
	if err != nil {
		return models.Announcement{}, notFound(err, apperrors.ErrAnnouncementNotFound)
	}
	return models.AnnouncementFromDocument(doc.ID, doc.Data), nil
}

// CreateAnnouncement stores a new announcement
func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, fields map[string]any) (string, error) {
	id, err := r.store.Create(ctx, models.CollectionAnnouncements, fields)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating announcement")
		return "", fmt.Errorf("error creating announcement: %w", err)
	}
	return id, nil
}

// UpdateAnnouncement merges fields into an announcement document
func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, models.CollectionAnnouncements, id, fields); err != nil {
		logger.Error().Err(err).Str("announcementID", id).Msg("Error updating announcement")
		return notFound(err, apperrors.ErrAnnouncementNotFound)
	}
	return nil
}

// DeleteAnnouncement removes an announcement document
func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.CollectionAnnouncements, id); err != nil {
		logger.Error().Err(err).Str("announcementID", id).Msg("Error deleting announcement")
		return notFound(err, apperrors.ErrAnnouncementNotFound)
	}
	return nil
}
