package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tallercr/workshop-api/models"
	"github.com/tallercr/workshop-api/store"
)

// Sender delivers notification mail.
type Sender interface {
	SendEmail(to, subject, body string) error
}

type Scheduler struct {
	quotes store.QuoteStore
	mailer Sender
	log    *zap.Logger
}

func NewScheduler(quotes store.QuoteStore, mailer Sender, log *zap.Logger) *Scheduler {
	return &Scheduler{quotes: quotes, mailer: mailer, log: log}
}

// Start registers the maintenance jobs and starts the cron scheduler.
func (s *Scheduler) Start() (*cron.Cron, error) {
	c := cron.New()

	// Quotes dated before today are no longer actionable.
	if _, err := c.AddFunc("0 * * * *", s.purgeExpiredQuotes); err != nil {
		return nil, fmt.Errorf("failed to add purge job: %w", err)
	}
	if _, err := c.AddFunc("0 7 * * *", s.sendReminders); err != nil {
		return nil, fmt.Errorf("failed to add reminder job: %w", err)
	}

	c.Start()
	s.log.Info("cron scheduler started")
	return c, nil
}

func (s *Scheduler) purgeExpiredQuotes() {
	today := time.Now().Format("2006-01-02")
	removed, err := s.quotes.PurgeBefore(context.Background(), today)
	if err != nil {
		s.log.Warn("failed to purge expired quotes", zap.Error(err))
		return
	}
	if removed > 0 {
		s.log.Info("purged expired quotes", zap.Int64("removed", removed))
	}
}

// sendReminders mails every client booked for tomorrow.
func (s *Scheduler) sendReminders() {
	if s.mailer == nil {
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	quotes, err := s.quotes.ListByDate(context.Background(), tomorrow)
	if err != nil {
		s.log.Warn("failed to load quotes for reminders", zap.Error(err))
		return
	}

	for _, quote := range quotes {
		if quote.ClientEmail == "" || quote.Status == models.QuoteStatusCanceled {
			continue
		}
		if err := s.sendReminderEmail(&quote); err != nil {
			s.log.Warn("failed to send reminder",
				zap.Uint("quote_id", quote.ID), zap.Error(err))
			continue
		}
		s.log.Info("sent reminder",
			zap.Uint("quote_id", quote.ID), zap.String("email", quote.ClientEmail))
	}
}

// sendReminderEmail constructs and sends the reminder email
func (s *Scheduler) sendReminderEmail(quote *models.Quote) error {
	subject := fmt.Sprintf("Reminder: Service appointment tomorrow - %s", quote.Branch)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your service appointment tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Branch:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Vehicle:</strong> %s %s (%s)</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
	`, quote.ClientName, quote.Branch, quote.Date, quote.TimeSlot,
		quote.VehicleMake, quote.VehicleModel, quote.PlateNumber)

	return s.mailer.SendEmail(quote.ClientEmail, subject, body)
}
