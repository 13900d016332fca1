package service

import (
	"ifc-reuse-backend/internal/database/models"
	apperrors "ifc-reuse-backend/internal/errors"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID uuid.UUID
	Email  string
	Admin  bool
}

// canModify reports whether the actor owns the project or is an admin
func (a Actor) canModify(project *models.Project) bool {
	return a.Admin || (a.UserID != uuid.Nil && project.UserID == a.UserID)
}

func (a Actor) requireOwner(project *models.Project) error {
	if !a.canModify(project) {
		return apperrors.ErrNotProjectOwner
	}
	return nil
}
