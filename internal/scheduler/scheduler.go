package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic maintenance tasks.
type Scheduler struct {
	cron        *cron.Cron
	ctx         context.Context
	cancel      context.CancelFunc
	cleanupFunc func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetCleanupFunction sets the task that closes stale training sessions.
func (s *Scheduler) SetCleanupFunction(f func(ctx context.Context) error) {
	s.cleanupFunc = f
}

func (s *Scheduler) Start() error {
	if s.cleanupFunc == nil {
		log.Println("Cleanup function not set, scheduler will not run maintenance")
		return nil
	}

	// Daily at 03:00 UTC
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		log.Println("Triggered stale session cleanup")
		if err := s.cleanupFunc(s.ctx); err != nil {
			log.Printf("Stale session cleanup failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}
