package policy

import (
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils/apierror"
)

// NotePolicy encapsulates the ownership rules for note access.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type NotePolicy struct{}

func NewNotePolicy() *NotePolicy {
	return &NotePolicy{}
}

// CanSee allows the owner and any listed collaborator. Everyone else
// gets a not-found, never a hint that the note exists.
func (p *NotePolicy) CanSee(note *entity.Note, actor *entity.Account) apierror.ErrorResponse {
	if note == nil {
		return apierror.NoteNotFoundError
	}

	if note.UserID == actor.ID {
		return nil
	}

	for _, collaborator := range note.Collaborators {
		if collaborator.ID == actor.ID {
			return nil
		}
	}
	return apierror.NoteNotFoundError
}

// CanModify restricts updates, trashing and attachments to the owner.
func (p *NotePolicy) CanModify(note *entity.Note, actor *entity.Account) apierror.ErrorResponse {
	if note == nil || note.UserID != actor.ID {
		return apierror.NoteNotFoundError
	}
	return nil
}
