package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// IJob cron driven job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob runs OnWork on the cron schedule, skipping a tick while the previous one is running
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	job.OnWork()

	job.IsRunning = false
}

const (
	defaultDelay    = 100 * time.Millisecond
	defaultErrDelay = 500 * time.Millisecond
)

// TickWorker polling loop, backs off to ErrDelay after a failed tick
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick call onTick until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onTick func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = defaultDelay
	}

	if errDelay <= 0 {
		errDelay = defaultErrDelay
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onTick(ctx); err == nil {
				dur = delay
			} else {
				dur = errDelay
			}
		}
	}
}

// Worker long running worker
type Worker interface {
	Run(ctx context.Context) error
}
