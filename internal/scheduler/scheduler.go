package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner evicts stale cache entries. weather.Orchestrator satisfies it.
type Pruner interface {
	PruneStale() int
}

// Janitor periodically sweeps the forecast cache so entries for queries
// nobody repeats do not accumulate forever.
type Janitor struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a Janitor sweeping at the given interval.
func New(pruner Pruner, interval time.Duration, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		pruner:    pruner,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic sweep and starts the underlying scheduler.
func (j *Janitor) Start() error {
	seconds := int(j.interval.Seconds())
	if seconds <= 0 {
		seconds = 60
	}

	_, err := j.scheduler.Every(seconds).Seconds().Do(func() {
		if n := j.pruner.PruneStale(); n > 0 {
			j.logger.Debug("pruned stale forecast entries", "evicted", n)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
