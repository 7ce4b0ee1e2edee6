package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/app/repositories"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// DefaultEditor is recorded as updatedBy when no identity is known
const DefaultEditor = "Admin"

// UserService defines the student operations
type UserService interface {
	ListStudents(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	// UpdateUser writes the draft's editable fields plus updatedBy/updatedAt.
	UpdateUser(ctx context.Context, draft *models.UserDraft, updatedBy string) error
}

type userServiceImpl struct {
	userRepo *repositories.UserRepository
	now      Clock
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, clock Clock) UserService {
	return &userServiceImpl{userRepo: userRepo, now: clock}
}

func (s *userServiceImpl) ListStudents(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListStudents(ctx)
	return users, loadErr(err)
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.userRepo.GetUser(ctx, id)
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, draft *models.UserDraft, updatedBy string) error {
	if draft == nil {
		return fmt.Errorf("%w: user draft is nil", apperrors.ErrValidationFailed)
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(updatedBy) == "" {
		updatedBy = DefaultEditor
	}
	fields := draft.Fields()
	fields[models.FieldUpdatedBy] = updatedBy
	fields[models.FieldUpdatedAt] = s.now().UTC()

	return mutationErr(s.userRepo.UpdateUser(ctx, draft.ID, fields))
}
