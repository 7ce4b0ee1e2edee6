package services

import (
	"context"
	"fmt"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/repositories"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// AnnouncementService defines announcement operations
type AnnouncementService interface {
	// ListAnnouncements returns announcements newest first.
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	GetAnnouncement(ctx context.Context, id string) (models.Announcement, error)
	// SaveAnnouncement creates or updates; a new announcement keeps the
	// draft's postDate or is stamped with the current time.
	SaveAnnouncement(ctx context.Context, draft *models.AnnouncementDraft) (string, error)
	DeleteAnnouncement(ctx context.Context, id string) error
}

type announcementServiceImpl struct {
	repo *repositories.AnnouncementRepository
	now  Clock
}

// NewAnnouncementService creates a new announcement service instance
func NewAnnouncementService(repo *repositories.AnnouncementRepository, clock Clock) AnnouncementService {
	return &announcementServiceImpl{repo: repo, now: clock}
}

func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	posts, err := s.repo.ListAnnouncements(ctx)
	return posts, loadErr(err)
}

func (s *announcementServiceImpl) GetAnnouncement(ctx context.Context, id string) (models.Announcement, error) {
	return s.repo.GetAnnouncement(ctx, id)
}

func (s *announcementServiceImpl) SaveAnnouncement(ctx context.Context, draft *models.AnnouncementDraft) (string, error) {
	if draft == nil {
		return "", fmt.Errorf("%w: announcement draft is nil", apperrors.ErrValidationFailed)
	}
	if err := draft.Validate(); err != nil {
		return "", err
	}

	fields := draft.Fields()
	if draft.ID != "" {
		return draft.ID, mutationErr(s.repo.UpdateAnnouncement(ctx, draft.ID, fields))
	}

	postDate := s.now().UTC()
	if draft.PostDate != nil && !draft.PostDate.IsZero() {
		postDate = draft.PostDate.UTC()
	}
	fields["postDate"] = postDate
	id, err := s.repo.CreateAnnouncement(ctx, fields)
	return id, mutationErr(err)
}

func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, id string) error {
	return mutationErr(s.repo.DeleteAnnouncement(ctx, id))
}
