package repository

import (
	"testing"
	"time"

	"keepnotes/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindVisibleIncludesOwnedAndShared(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	collaborator := seedAccount(t, db, "collab@example.com")
	stranger := seedAccount(t, db, "stranger@example.com")

	seedNote(t, db, owner, "mine", nil)
	seedNote(t, db, owner, "shared", func(n *entity.Note) {
		n.Collaborators = []entity.Account{*collaborator}
	})
	seedNote(t, db, stranger, "not yours", nil)

	ownerNotes, err := repo.FindVisible(owner.ID)
	require.NoError(t, err)
	assert.Len(t, ownerNotes, 2)

	collabNotes, err := repo.FindVisible(collaborator.ID)
	require.NoError(t, err)
	require.Len(t, collabNotes, 1)
	assert.Equal(t, "shared", collabNotes[0].Title)
}

func TestFindVisibleExcludesTrashed(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	seedNote(t, db, owner, "kept", nil)
	seedNote(t, db, owner, "gone", func(n *entity.Note) { n.IsTrashed = true })

	notes, err := repo.FindVisible(owner.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "kept", notes[0].Title)
}

func TestFindVisibleByIDDeniesStrangers(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	stranger := seedAccount(t, db, "stranger@example.com")
	note := seedNote(t, db, owner, "private", nil)

	found, err := repo.FindVisibleByID(owner.ID, note.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	denied, err := repo.FindVisibleByID(stranger.ID, note.ID)
	require.NoError(t, err)
	assert.Nil(t, denied)
}

func TestPinnedAndArchivedListings(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	seedNote(t, db, owner, "plain", nil)
	seedNote(t, db, owner, "pinned", func(n *entity.Note) { n.IsPinned = true })
	seedNote(t, db, owner, "archived", func(n *entity.Note) { n.IsArchived = true })
	seedNote(t, db, owner, "pinned but trashed", func(n *entity.Note) {
		n.IsPinned = true
		n.IsTrashed = true
	})

	pinned, err := repo.FindPinned(owner.ID)
	require.NoError(t, err)
	require.Len(t, pinned, 1)
	assert.Equal(t, "pinned", pinned[0].Title)

	archived, err := repo.FindArchived(owner.ID)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "archived", archived[0].Title)
}

func TestTrashIsOwnerOnly(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	collaborator := seedAccount(t, db, "collab@example.com")
	seedNote(t, db, owner, "trashed", func(n *entity.Note) {
		n.IsTrashed = true
		n.Collaborators = []entity.Account{*collaborator}
	})

	ownerTrash, err := repo.FindTrashed(owner.ID)
	require.NoError(t, err)
	assert.Len(t, ownerTrash, 1)

	// Collaborators never see the owner's trash.
	collabTrash, err := repo.FindTrashed(collaborator.ID)
	require.NoError(t, err)
	assert.Empty(t, collabTrash)
}

func TestFindOwnedByIDExcludesTrashedAndForeign(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	collaborator := seedAccount(t, db, "collab@example.com")
	note := seedNote(t, db, owner, "editable", func(n *entity.Note) {
		n.Collaborators = []entity.Account{*collaborator}
	})
	trashed := seedNote(t, db, owner, "already trashed", func(n *entity.Note) { n.IsTrashed = true })

	found, err := repo.FindOwnedByID(owner.ID, note.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)

	// Collaborators may see, not mutate.
	denied, err := repo.FindOwnedByID(collaborator.ID, note.ID)
	require.NoError(t, err)
	assert.Nil(t, denied)

	gone, err := repo.FindOwnedByID(owner.ID, trashed.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSearchMatchesAllTermsCaseInsensitively(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	seedNote(t, db, owner, "Grocery List", func(n *entity.Note) { n.Description = "milk and eggs" })
	seedNote(t, db, owner, "Work Plan", func(n *entity.Note) { n.Description = "milk the metrics" })
	seedNote(t, db, owner, "trashed groceries", func(n *entity.Note) {
		n.Description = "milk"
		n.IsTrashed = true
	})

	notes, err := repo.Search(owner.ID, []string{"MILK", "grocery"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Grocery List", notes[0].Title)

	notes, err = repo.Search(owner.ID, []string{"milk"})
	require.NoError(t, err)
	assert.Len(t, notes, 2, "trashed notes stay out of search results")
}

func TestFindUpcomingReminders(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	now := time.Now().UTC()

	soon := now.Add(30 * time.Minute)
	past := now.Add(-30 * time.Minute)
	seedNote(t, db, owner, "due soon", func(n *entity.Note) { n.Reminder = &soon })
	seedNote(t, db, owner, "already due", func(n *entity.Note) { n.Reminder = &past })
	seedNote(t, db, owner, "no reminder", nil)

	notes, err := repo.FindUpcomingReminders(now)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "due soon", notes[0].Title)
}

func TestReplaceLabels(t *testing.T) {
	db := openTestDB(t)
	repo := NewNoteRepository(db)

	owner := seedAccount(t, db, "owner@example.com")
	home := &entity.Label{Name: "home", UserID: owner.ID}
	work := &entity.Label{Name: "work", UserID: owner.ID}
	require.NoError(t, db.Create(home).Error)
	require.NoError(t, db.Create(work).Error)

	note := seedNote(t, db, owner, "labeled", func(n *entity.Note) {
		n.Labels = []entity.Label{*home}
	})

	require.NoError(t, repo.ReplaceLabels(note, []entity.Label{*work}))

	reloaded, err := repo.FindVisibleByID(owner.ID, note.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Labels, 1)
	assert.Equal(t, "work", reloaded.Labels[0].Name)
}
