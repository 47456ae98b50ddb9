package scheduler

import (
	"context"
	"time"

	"HiddenLight/internal/ports"
)

// DailyScheduler runs a job once at startup and then on a fixed interval.
type DailyScheduler struct {
	interval time.Duration
	stop     chan struct{}
}

var _ ports.DailyScheduler = (*DailyScheduler)(nil)

// NewDailyScheduler builds a scheduler; a non-positive interval falls back
// to 24 hours.
func NewDailyScheduler(interval time.Duration) *DailyScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &DailyScheduler{interval: interval}
}

// Start begins ticking. The job fires immediately so a fresh start still
// delivers today's content.
func (d *DailyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	if d.stop != nil {
		return nil
	}

	d.stop = make(chan struct{})
	// The goroutine selects on its own copy of the channel; Stop nils the
	// field, and a nil channel would never become ready.
	stop := d.stop
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (d *DailyScheduler) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	close(d.stop)
	d.stop = nil
	return nil
}
