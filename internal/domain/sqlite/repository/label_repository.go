package repository

import (
	"errors"

	"keepnotes/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultLabelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) *DefaultLabelRepository {
	return &DefaultLabelRepository{db: db}
}

// FindByUser lists the user's labels, excluding soft-deleted ones.
func (l *DefaultLabelRepository) FindByUser(userID int) ([]*entity.Label, error) {
	var labels []*entity.Label
	err := l.db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (l *DefaultLabelRepository) FindByID(userID, labelID int) (*entity.Label, error) {
	var label entity.Label
	err := l.db.
		Where("id = ? AND user_id = ? AND is_deleted = ?", labelID, userID, false).
		First(&label).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByName looks a label up by its globally unique name, owner agnostic.
// Used to resolve label name lists on note create/update.
func (l *DefaultLabelRepository) FindByName(name string) (*entity.Label, error) {
	var label entity.Label
	err := l.db.
		Where("name = ? AND is_deleted = ?", name, false).
		First(&label).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (l *DefaultLabelRepository) ExistsByName(name string) (bool, error) {
	var exists int
	err := l.db.
		Raw("SELECT EXISTS(SELECT 1 FROM labels WHERE name = ?)", name).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (l *DefaultLabelRepository) Save(label *entity.Label) error {
	return l.db.Save(label).Error
}
