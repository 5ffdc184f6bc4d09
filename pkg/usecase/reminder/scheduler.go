package reminder

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"

	"github.com/m-mizutani/recall/pkg/utils/logging"
)

// hourlySpec fires at the top of every hour.
const hourlySpec = "0 * * * *"

// Scheduler drives periodic reminder scans.
type Scheduler struct {
	scanner *Scanner
	cron    *cron.Cron
}

// NewScheduler wires the scanner to an hourly cron schedule. The given
// context is attached to every scheduled scan.
func NewScheduler(ctx context.Context, scanner *Scanner) (*Scheduler, error) {
	s := &Scheduler{
		scanner: scanner,
		cron:    cron.New(),
	}

	if _, err := s.cron.AddFunc(hourlySpec, func() {
		if err := scanner.Scan(ctx); err != nil {
			logging.From(ctx).Error("reminder scan failed", "error", err)
		}
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to schedule reminder scan")
	}

	return s, nil
}

// Start begins the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
