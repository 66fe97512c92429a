package repository

import (
	"testing"

	"keepnotes/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLabel(t *testing.T, repo *DefaultLabelRepository, userID int, name string) *entity.Label {
	t.Helper()

	label := &entity.Label{Name: name, UserID: userID}
	require.NoError(t, repo.Save(label))
	return label
}

func TestFindByUserSkipsDeletedLabels(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabelRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	other := seedAccount(t, db, "other@example.com")

	seedLabel(t, repo, owner.ID, "home")
	deleted := seedLabel(t, repo, owner.ID, "old")
	deleted.SoftDelete()
	require.NoError(t, repo.Save(deleted))
	seedLabel(t, repo, other.ID, "theirs")

	labels, err := repo.FindByUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "home", labels[0].Name)
}

func TestFindByIDScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabelRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	other := seedAccount(t, db, "other@example.com")
	label := seedLabel(t, repo, owner.ID, "home")

	found, err := repo.FindByID(owner.ID, label.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "home", found.Name)

	denied, err := repo.FindByID(other.ID, label.ID)
	require.NoError(t, err)
	assert.Nil(t, denied)
}

func TestFindByNameIgnoresDeleted(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabelRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	label := seedLabel(t, repo, owner.ID, "home")

	found, err := repo.FindByName("home")
	require.NoError(t, err)
	require.NotNil(t, found)

	label.SoftDelete()
	require.NoError(t, repo.Save(label))

	gone, err := repo.FindByName("home")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestExistsByNameCountsDeletedRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabelRepository(db)

	owner := seedAccount(t, db, "owner@example.com")

	exists, err := repo.ExistsByName("home")
	require.NoError(t, err)
	assert.False(t, exists)

	label := seedLabel(t, repo, owner.ID, "home")
	exists, err = repo.ExistsByName("home")
	require.NoError(t, err)
	assert.True(t, exists)

	// The name stays reserved after a soft delete, the unique index row
	// is still there.
	label.SoftDelete()
	require.NoError(t, repo.Save(label))
	exists, err = repo.ExistsByName("home")
	require.NoError(t, err)
	assert.True(t, exists)
}
