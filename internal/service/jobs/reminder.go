package jobs

import (
	"context"
	"time"

	"keepnotes/internal/domain/entity"

	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindUpcomingReminders(now time.Time) ([]*entity.Note, error)
}

type AccountRepository interface {
	FindByID(id int) (*entity.Account, error)
}

type Mailer interface {
	Send(to, subject, body string) error
}

// ReminderSweep periodically scans for notes whose reminder falls within
// the next hour and emails the owner. Consecutive sweeps inside the same
// hour window re-notify; there is no sent marker.
type ReminderSweep struct {
	Notes    NoteRepository
	Accounts AccountRepository
	Mailer   Mailer
	Interval time.Duration
}

func NewReminderSweep(notes NoteRepository, accounts AccountRepository, mailer Mailer, interval time.Duration) *ReminderSweep {
	return &ReminderSweep{
		Notes:    notes,
		Accounts: accounts,
		Mailer:   mailer,
		Interval: interval,
	}
}

func (r *ReminderSweep) Start(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	log.Info("Reminder sweep started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping reminder sweep...")
			return
		case <-ticker.C:
			r.Sweep(time.Now().UTC())
		}
	}
}

// Sweep runs one pass. Exported so it can be invoked directly.
func (r *ReminderSweep) Sweep(now time.Time) {
	notes, err := r.Notes.FindUpcomingReminders(now)
	if err != nil {
		log.Errorf("Sweep: failed to fetch notes with reminders: %v", err)
		return
	}

	for _, note := range notes {
		remaining := note.Reminder.Sub(now)
		if remaining <= 0 || remaining >= time.Hour {
			continue
		}

		owner, err := r.Accounts.FindByID(note.UserID)
		if err != nil || owner == nil {
			log.Errorf("Sweep: failed to resolve owner of note %d: %v", note.ID, err)
			continue
		}

		body := "Hi! Reminder for " + note.Title + " is scheduled within this hour."
		if err := r.Mailer.Send(owner.Email, "Reminder for your note", body); err != nil {
			log.Errorf("Sweep: failed to send reminder for note %d: %v", note.ID, err)
			continue
		}
		log.Infof("Sweep: sent reminder for note %d to %s", note.ID, owner.Email)
	}
}
