package usecase

import (
	"context"
	"log/slog"
	"time"

	"HiddenLight/internal/content"
	"HiddenLight/internal/domain"
	"HiddenLight/internal/service"
)

// DailyHadith delivers one hadith per day as a notification. The pick
// rotates with the day of the year, so every run on the same day delivers
// the same hadith.
type DailyHadith struct {
	notifications *service.Notifications
	log           *slog.Logger

	lastDelivered string
}

// NewDailyHadith constructs the daily delivery job.
func NewDailyHadith(notifications *service.Notifications, log *slog.Logger) *DailyHadith {
	return &DailyHadith{notifications: notifications, log: log}
}

// Pick returns the hadith of the given day.
func (d *DailyHadith) Pick(day time.Time) domain.Hadith {
	wisdom := content.Wisdom()
	return wisdom[day.YearDay()%len(wisdom)]
}

// Run delivers the day's hadith once; repeated ticks on the same day are
// no-ops. Delivery failure only logs, the next tick retries.
func (d *DailyHadith) Run(ctx context.Context, day time.Time) {
	hadith := d.Pick(day)
	if hadith.ID == d.lastDelivered {
		return
	}

	_, err := d.notifications.Create(ctx, &domain.Notification{
		Title:   "Daily Hadith",
		Message: hadith.Text + "\n" + hadith.TextAr + "\n(" + hadith.Source + ")",
		Type:    "daily_hadith",
	})
	if err != nil {
		d.log.Warn("daily hadith delivery failed", "hadith", hadith.ID, "error", err)
		return
	}
	d.lastDelivered = hadith.ID
	d.log.Info("daily hadith delivered", "hadith", hadith.ID)
}
