package jobs

import (
	"testing"
	"time"

	"keepnotes/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

type fakeNotes struct {
	notes []*entity.Note
}

func (f *fakeNotes) FindUpcomingReminders(now time.Time) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range f.notes {
		if n.Reminder != nil && n.Reminder.After(now) && !n.IsTrashed {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeAccounts struct {
	accounts map[int]*entity.Account
}

func (f *fakeAccounts) FindByID(id int) (*entity.Account, error) {
	return f.accounts[id], nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, to+": "+body)
	return nil
}

func newSweepFixture(notes ...*entity.Note) (*ReminderSweep, *fakeMailer) {
	mailer := &fakeMailer{}
	accounts := &fakeAccounts{accounts: map[int]*entity.Account{
		1: {ID: 1, Email: "owner@example.com", IsActive: true},
	}}
	sweep := NewReminderSweep(&fakeNotes{notes: notes}, accounts, mailer, time.Minute)
	return sweep, mailer
}

func noteDueIn(offset time.Duration, now time.Time) *entity.Note {
	due := now.Add(offset)
	return &entity.Note{ID: 10, UserID: 1, Title: "dentist", Reminder: &due}
}

func TestSweepNotifiesWithinTheHour(t *testing.T) {
	now := time.Now().UTC()
	sweep, mailer := newSweepFixture(noteDueIn(30*time.Minute, now))

	sweep.Sweep(now)
	assert.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0], "owner@example.com")
	assert.Contains(t, mailer.sent[0], "dentist")
}

func TestSweepRepeatsWithoutSentMarker(t *testing.T) {
	now := time.Now().UTC()
	sweep, mailer := newSweepFixture(noteDueIn(30*time.Minute, now))

	sweep.Sweep(now)
	sweep.Sweep(now.Add(time.Minute))
	assert.Len(t, mailer.sent, 2, "each sweep re-notifies while the reminder is in window")
}

func TestSweepSkipsRemindersOutsideTheWindow(t *testing.T) {
	now := time.Now().UTC()
	sweep, mailer := newSweepFixture(
		noteDueIn(2*time.Hour, now),
		noteDueIn(-30*time.Minute, now),
	)

	sweep.Sweep(now)
	assert.Empty(t, mailer.sent)
}

func TestSweepSkipsExactHourBoundary(t *testing.T) {
	now := time.Now().UTC()
	sweep, mailer := newSweepFixture(noteDueIn(time.Hour, now))

	sweep.Sweep(now)
	assert.Empty(t, mailer.sent)
}
