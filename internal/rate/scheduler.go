package rate

import (
	"context"
	"fxconverter/internal/domain"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = 10 * time.Minute

type SnapshotRefresher interface {
	Refresh(ctx context.Context) (domain.RateSnapshot, error)
}

// Scheduler keeps the snapshot cache warm by refreshing it on a fixed interval.
type Scheduler struct {
	refresher       SnapshotRefresher
	refreshInterval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		snapshot, refreshErr := s.refresher.Refresh(jobCtx)
		if refreshErr != nil {
			logrus.Errorf("Refresh exchange rates job %s failed: %v", execID, refreshErr)
			return
		}
		logrus.Infof("Refresh exchange rates job %s stored %d rates for base %s", execID, len(snapshot.Rates), snapshot.Base)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.refreshInterval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)

	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	scheduler.Start()
	logrus.Infof("Exchange rate refresh scheduled every %s", s.refreshInterval)

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(refresher SnapshotRefresher, refreshInterval time.Duration) *Scheduler {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return &Scheduler{refresher: refresher, refreshInterval: refreshInterval}
}
