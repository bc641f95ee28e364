// Package scheduler runs the service's maintenance jobs on cron schedules.
// It owns exactly one cron instance; Start and Stop report misuse instead
// of silently ignoring it.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/pkg/metrics"
)

// Lifecycle errors.
var (
	ErrAlreadyRunning = errors.New("scheduler is already running")
	ErrNotRunning     = errors.New("scheduler is not running")
	ErrDuplicateJob   = errors.New("job already registered")
	ErrUnknownJob     = errors.New("job not registered")
)

// specParser accepts six-field specs with a leading seconds field.
var specParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// JobFunc is one run of a maintenance job.
type JobFunc func(ctx context.Context) error

type job struct {
	name    string
	spec    string
	fn      JobFunc
	entryID cron.EntryID
}

// JobStatus describes one registered job.
type JobStatus struct {
	Name     string     `json:"name"`
	Schedule string     `json:"schedule"`
	Next     *time.Time `json:"next,omitempty"`
	Prev     *time.Time `json:"prev,omitempty"`
}

// Status is a snapshot of the scheduler.
type Status struct {
	Running bool        `json:"running"`
	Jobs    []JobStatus `json:"jobs"`
}

// Scheduler wraps a cron.Cron with an explicit running state.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu      sync.Mutex
	running bool
	jobs    map[string]*job
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a stopped scheduler. m may be nil. Each job run is bounded by timeout.
func New(logger *zap.Logger, m *metrics.Metrics, timeout time.Duration) *Scheduler {
	cl := cronLogger{logger.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(specParser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		metrics: m,
		timeout: timeout,
		jobs:    make(map[string]*job),
	}
}

// Register adds a job under a unique name. Jobs may be registered while running.
func (s *Scheduler) Register(name, spec string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}

	entryID, err := s.cron.AddFunc(spec, func() { s.run(name, fn) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	s.jobs[name] = &job{name: name, spec: spec, fn: fn, entryID: entryID}
	s.logger.Info("job registered", zap.String("job", name), zap.String("schedule", spec))
	return nil
}

// Start begins firing jobs. It returns ErrAlreadyRunning when started twice.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.cron.Start()
	s.running = true

	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop cancels in-flight jobs and waits for them to return.
// It returns ErrNotRunning when the scheduler is idle.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.running = false
	s.cancel()
	stopped := s.cron.Stop()
	s.mu.Unlock()

	<-stopped.Done()
	s.logger.Info("scheduler stopped")
	return nil
}

// Running reports whether jobs are being fired.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Status returns the running flag and every job's schedule.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{Running: s.running, Jobs: make([]JobStatus, 0, len(s.jobs))}
	for _, j := range s.jobs {
		js := JobStatus{Name: j.name, Schedule: j.spec}
		entry := s.cron.Entry(j.entryID)
		if s.running && !entry.Next.IsZero() {
			next := entry.Next
			js.Next = &next
		}
		if !entry.Prev.IsZero() {
			prev := entry.Prev
			js.Prev = &prev
		}
		status.Jobs = append(status.Jobs, js)
	}
	sort.Slice(status.Jobs, func(i, k int) bool { return status.Jobs[i].Name < status.Jobs[k].Name })
	return status
}

// Trigger runs a registered job once, outside its schedule, and returns
// its error. It works whether or not the scheduler is running.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.execute(ctx, name, j.fn)
}

func (s *Scheduler) run(name string, fn JobFunc) {
	s.mu.Lock()
	parent := s.ctx
	s.mu.Unlock()
	if parent == nil {
		parent = context.Background()
	}
	_ = s.execute(parent, name, fn)
}

func (s *Scheduler) execute(parent context.Context, name string, fn JobFunc) error {
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	if s.metrics != nil {
		s.metrics.ObserveJob(name, err)
	}
	if err != nil {
		s.logger.Error("job failed", zap.String("job", name), zap.Error(err), zap.Duration("duration", time.Since(start)))
		return err
	}
	s.logger.Debug("job completed", zap.String("job", name), zap.Duration("duration", time.Since(start)))
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
