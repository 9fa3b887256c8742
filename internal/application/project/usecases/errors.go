package usecases

import (
	stderrors "errors"

	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
)

const (
	msgProjectNotFound = "Project not found"
	msgProjectInTrash  = "Project is in trash. Restore it from Trash first."
	msgAccessDenied    = "Access denied to this project"
)

// toAppError maps project domain errors onto the HTTP-facing taxonomy.
func toAppError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsAppError(err):
		return err
	case stderrors.Is(err, project.ErrTitleRequired):
		return errors.NewValidationError("Title is required")
	case stderrors.Is(err, project.ErrNotInTrash):
		return errors.NewValidationError("Project is not in trash")
	case stderrors.Is(err, project.ErrNotTrashed):
		return errors.NewValidationError("Move project to trash first, then you can delete it permanently.")
	default:
		return errors.NewValidationError(err.Error())
	}
}
