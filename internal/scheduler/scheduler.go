package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weathernow/internal/app"
)

// Scheduler periodically refreshes conditions for the current location.
// A refresh is an ordinary flow: if the user triggers anything while it
// is in flight, the coordinator's generation guard discards its result.
type Scheduler struct {
	scheduler *gocron.Scheduler
	coord     *app.Coordinator
	interval  time.Duration
}

// New creates a Scheduler. An interval of 0 disables refreshing.
func New(coord *app.Coordinator, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		coord:     coord,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Println("scheduler: refreshing current conditions")
		s.coord.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
