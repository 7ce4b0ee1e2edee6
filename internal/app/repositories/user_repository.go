package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
	"github.com/yigit/portaladmin/internal/pkg/logger"
)

// UserRepository reads and updates student documents
type UserRepository struct {
	store docstore.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// ListStudents returns every user whose type is Student
func (r *UserRepository) ListStudents(ctx context.Context) ([]models.User, error) {
	q := docstore.Query{}.Eq(models.FieldUserType, models.UserTypeStudent)
	docs, err := r.store.List(ctx, models.CollectionUsers, q)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, models.UserFromDocument(d.ID, d.Data))
	}
	return users, nil
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(ctx context.Context, id string) (models.User, error) {
	doc, err := r.store.Get(ctx, models.CollectionUsers, id)
	if err != nil {
		return models.User{}, notFound(err, apperrors.ErrUserNotFound)
	}
	return models.UserFromDocument(doc.ID, doc.Data), nil
}

// UpdateUser merges fields into a user document
func (r *UserRepository) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Update(ctx, models.CollectionUsers, id, fields); err != nil {
		logger.Error().Err(err).Str("userID", id).Msg("Error updating user")
		return notFound(err, apperrors.ErrUserNotFound)
	}
	return nil
}
