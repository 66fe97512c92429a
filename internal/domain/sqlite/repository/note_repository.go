package repository

import (
	"errors"
	"strings"
	"time"

	"keepnotes/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// visible is the base scope for every non-trash read: notes owned by the
// user or shared with them as a collaborator, excluding trashed ones.
// Soft-delete filtering lives here so call sites cannot forget it.
func (d *DefaultNoteRepository) visible(userID int) *gorm.DB {
	return d.db.Model(&entity.Note{}).
		Distinct("notes.*").
		Joins("LEFT JOIN note_collaborators nc ON nc.note_id = notes.id").
		Where("notes.user_id = ? OR nc.account_id = ?", userID, userID).
		Where("notes.is_trashed = ?", false)
}

func (d *DefaultNoteRepository) FindVisible(userID int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.visible(userID).
		Preload("Labels").
		Preload("Collaborators").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindVisibleByID(userID, noteID int) (*entity.Note, error) {
	var note entity.Note
	err := d.visible(userID).
		Preload("Labels").
		Preload("Collaborators").
		Where("notes.id = ?", noteID).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) FindPinned(userID int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.visible(userID).
		Where("notes.is_pinned = ?", true).
		Preload("Labels").
		Preload("Collaborators").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindArchived(userID int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.visible(userID).
		Where("notes.is_archived = ?", true).
		Preload("Labels").
		Preload("Collaborators").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindTrashed lists the trash. Only the owner sees trashed notes,
// collaborators do not.
func (d *DefaultNoteRepository) FindTrashed(userID int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Where("user_id = ? AND is_trashed = ?", userID, true).
		Preload("Labels").
		Preload("Collaborators").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindTrashedByID(userID, noteID int) (*entity.Note, error) {
	var note entity.Note
	err := d.db.
		Where("id = ? AND user_id = ? AND is_trashed = ?", noteID, userID, true).
		Preload("Labels").
		Preload("Collaborators").
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// FindOwnedByID is the scope for mutations: only the owner may update or
// trash a note, and a note already in the trash cannot be mutated again.
func (d *DefaultNoteRepository) FindOwnedByID(userID, noteID int) (*entity.Note, error) {
	var note entity.Note
	err := d.db.
		Where("id = ? AND user_id = ? AND is_trashed = ?", noteID, userID, false).
		Preload("Labels").
		Preload("Collaborators").
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Search matches every term against title OR description,
// case-insensitively; terms are combined with AND.
func (d *DefaultNoteRepository) Search(userID int, terms []string) ([]*entity.Note, error) {
	query := d.visible(userID)
	for _, term := range terms {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("(LOWER(notes.title) LIKE ? OR LOWER(notes.description) LIKE ?)", pattern, pattern)
	}

	var notes []*entity.Note
	err := query.
		Preload("Labels").
		Preload("Collaborators").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindUpcomingReminders returns non-trashed notes whose reminder lies
// strictly in the future.
func (d *DefaultNoteRepository) FindUpcomingReminders(now time.Time) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Where("reminder IS NOT NULL AND reminder > ? AND is_trashed = ?", now, false).
		Preload("User").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Save(note).Error
}

func (d *DefaultNoteRepository) ReplaceLabels(note *entity.Note, labels []entity.Label) error {
	return d.db.Model(note).Association("Labels").Replace(labels)
}

func (d *DefaultNoteRepository) ReplaceCollaborators(note *entity.Note, collaborators []entity.Account) error {
	return d.db.Model(note).Association("Collaborators").Replace(collaborators)
}
