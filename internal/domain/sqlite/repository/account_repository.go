package repository

import (
	"errors"

	"keepnotes/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultAccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *DefaultAccountRepository {
	return &DefaultAccountRepository{db: db}
}

func (a *DefaultAccountRepository) FindByID(id int) (*entity.Account, error) {
	var account entity.Account
	err := a.db.First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindActiveByID resolves an account only if it can still authenticate.
func (a *DefaultAccountRepository) FindActiveByID(id int) (*entity.Account, error) {
	var account entity.Account
	err := a.db.Where("id = ? AND is_active = ?", id, true).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (a *DefaultAccountRepository) FindByEmail(email string) (*entity.Account, error) {
	var account entity.Account
	err := a.db.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (a *DefaultAccountRepository) ExistsByEmail(email string) (bool, error) {
	var exists int
	err := a.db.
		Raw("SELECT EXISTS(SELECT 1 FROM accounts WHERE email = ?)", email).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (a *DefaultAccountRepository) Save(account *entity.Account) error {
	return a.db.Save(account).Error
}
