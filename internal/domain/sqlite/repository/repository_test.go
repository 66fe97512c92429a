package repository

import (
	"testing"

	"keepnotes/internal/domain/entity"
	"keepnotes/internal/domain/sqlite"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.Init(":memory:")
	require.NoError(t, err)
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string) *entity.Account {
	t.Helper()

	account := &entity.Account{
		FirstName:  "Test",
		LastName:   "User",
		UserName:   "tester",
		Email:      email,
		Password:   "hash",
		IsActive:   true,
		IsVerified: true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func seedNote(t *testing.T, db *gorm.DB, owner *entity.Account, title string, mutate func(*entity.Note)) *entity.Note {
	t.Helper()

	note := &entity.Note{
		UserID:      owner.ID,
		Title:       title,
		Description: "description of " + title,
		Color:       "#00F0FF",
	}
	if mutate != nil {
		mutate(note)
	}
	require.NoError(t, db.Create(note).Error)
	return note
}
