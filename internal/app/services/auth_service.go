package services

import (
	"strings"

	"github.com/yigit/portaladmin/internal/app/models"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

// AuthService checks entered credentials against the roster
type AuthService interface {
	// Login returns the matching roster entry or apperrors.ErrInvalidCredentials.
	Login(id, name string) (models.RosterEntry, error)
}

type authServiceImpl struct {
	roster []models.RosterEntry
}

// NewAuthService creates an auth service over a fixed roster
func NewAuthService(roster []models.RosterEntry) AuthService {
	return &authServiceImpl{roster: append([]models.RosterEntry(nil), roster...)}
}

// Login requires an exact id match and a case-insensitive name match, both
// ignoring surrounding whitespace.
func (s *authServiceImpl) Login(id, name string) (models.RosterEntry, error) {
	id = strings.TrimSpace(id)
	name = strings.ToLower(strings.TrimSpace(name))
	if id == "" || name == "" {
		return models.RosterEntry{}, apperrors.ErrInvalidCredentials
	}

	for _, entry := range s.roster {
		if strings.TrimSpace(entry.ID) == id &&
			strings.ToLower(strings.TrimSpace(entry.Name)) == name {
			return entry, nil
		}
	}
	return models.RosterEntry{}, apperrors.ErrInvalidCredentials
}
