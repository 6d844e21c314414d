package pkgroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/gomdc/internal/pkg/pkglog"
)

// Defaults used by DefaultConfig and for invalid Config values.
const (
	DefaultCoreSize      = 5
	DefaultMaxSize       = 10
	DefaultQueueCapacity = 20
	DefaultKeepAlive     = 60 * time.Second
)

var (
	// ErrRejected is returned by Submit under RejectAbort when the queue is
	// full and the pool already runs MaxSize workers.
	ErrRejected = errors.New("pkgroutine: task rejected, pool saturated")
	// ErrStopped is returned by Submit once Stop has been called.
	ErrStopped = errors.New("pkgroutine: task rejected, pool stopped")
	// ErrNilTask is returned by Submit when the task is nil.
	ErrNilTask = errors.New("pkgroutine: nil task")
)

// RejectPolicy decides what Submit does with a task the pool cannot admit.
type RejectPolicy int

const (
	// RejectAbort refuses the task with ErrRejected.
	RejectAbort RejectPolicy = iota
	// RejectCallerRuns runs the task synchronously on the submitting goroutine.
	RejectCallerRuns
	// RejectBlock waits for queue room, the submitter's ctx, or shutdown.
	RejectBlock
)

func (p RejectPolicy) String() string {
	switch p {
	case RejectCallerRuns:
		return "caller-runs"
	case RejectBlock:
		return "block"
	default:
		return "abort"
	}
}

// ParseRejectPolicy parses "abort", "caller-runs" or "block".
// The empty string means abort.
func ParseRejectPolicy(s string) (RejectPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return RejectAbort, nil
	case "caller-runs", "caller_runs", "callerruns":
		return RejectCallerRuns, nil
	case "block":
		return RejectBlock, nil
	default:
		return RejectAbort, fmt.Errorf("unknown reject policy %q", s)
	}
}

// Config configures a Pool.
type Config struct {
	// CoreSize is the number of workers kept alive once started.
	CoreSize int
	// MaxSize is the ceiling of workers under load. Workers above CoreSize
	// exit after KeepAlive without work.
	MaxSize int
	// QueueCapacity is the number of pending tasks buffered before extra
	// workers are started. Zero means direct hand-off to an idle worker.
	QueueCapacity int
	KeepAlive     time.Duration
	Rejection     RejectPolicy
	// Decorator wraps every submitted task. Nil means PropagateContext.
	Decorator Decorator
	// ErrorHandler receives every error returned by a task, with the task's
	// context, so the submitter's fields and tenant are still visible. Nil
	// logs it.
	ErrorHandler func(ctx context.Context, err error)
	Metrics      *Metrics
}

// DefaultConfig returns a Config with the default sizes and PropagateContext.
func DefaultConfig() Config {
	return Config{
		CoreSize:      DefaultCoreSize,
		MaxSize:       DefaultMaxSize,
		QueueCapacity: DefaultQueueCapacity,
		KeepAlive:     DefaultKeepAlive,
		Rejection:     RejectAbort,
		Decorator:     PropagateContext,
	}
}

func (c Config) normalize() Config {
	if c.CoreSize < 1 {
		c.CoreSize = DefaultCoreSize
	}
	if c.MaxSize < 1 {
		c.MaxSize = DefaultMaxSize
	}
	if c.MaxSize < c.CoreSize {
		c.MaxSize = c.CoreSize
	}
	if c.QueueCapacity < 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.KeepAlive <= 0 {
		c.KeepAlive = DefaultKeepAlive
	}
	if c.Decorator == nil {
		c.Decorator = PropagateContext
	}
	if c.ErrorHandler == nil {
		c.ErrorHandler = logTaskError
	}
	return c
}

func logTaskError(ctx context.Context, err error) {
	slog.ErrorContext(ctx, "task failed", "error", err)
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	Workers       int
	Queued        int
	CoreSize      int
	MaxSize       int
	QueueCapacity int
}

// Pool runs tasks on a bounded set of worker goroutines.
//
// Admission follows the classic executor rules: below CoreSize a new worker
// is started for the task; otherwise the task is queued; when the queue is
// full a new worker is started up to MaxSize; beyond that the RejectPolicy
// applies. Every admitted task is wrapped by Config.Decorator on the
// submitting goroutine before it is queued.
type Pool struct {
	ctx     context.Context
	cfg     Config
	metrics *Metrics
	queue   chan job

	// state guards stopped; submitters hold it shared while admitting.
	state    sync.RWMutex
	stopped  bool
	stopping chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	workers int
	wg      sync.WaitGroup

	errMu sync.Mutex
	errs  []error
}

// NewPool creates a pool. ctx is the root of every worker context; its values
// are visible to tasks and its cancellation is observed by them. Workers are
// started lazily by Submit.
func NewPool(ctx context.Context, cfg Config) *Pool {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = cfg.normalize()

	return &Pool{
		ctx:      ctx,
		cfg:      cfg,
		metrics:  cfg.Metrics,
		queue:    make(chan job, cfg.QueueCapacity),
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Submit wraps t with the configured decorator using ctx, then schedules it.
// It returns nil once the task is admitted; the task's own error is reported
// to the ErrorHandler and collected for Stop, never returned here.
func (p *Pool) Submit(ctx context.Context, t Task) error {
	if t == nil {
		return ErrNilTask
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rep := &report{pool: p, task: t}
	task := job{task: p.cfg.Decorator(ctx, rep), report: rep}

	p.state.RLock()
	if p.stopped {
		p.state.RUnlock()
		p.metrics.taskRejected()
		return ErrStopped
	}

	if p.admit(task) {
		p.state.RUnlock()
		p.metrics.taskSubmitted()
		return nil
	}

	if p.cfg.Rejection == RejectBlock {
		err := p.enqueueWait(ctx, task)
		p.state.RUnlock()
		if err != nil {
			p.metrics.taskRejected()
			return err
		}
		p.metrics.taskSubmitted()
		return nil
	}
	p.state.RUnlock()

	if p.cfg.Rejection == RejectCallerRuns {
		p.metrics.taskSubmitted()
		p.run(pkglog.WithFields(p.ctx), task)
		return nil
	}

	p.metrics.taskRejected()
	slog.WarnContext(ctx, "task rejected by saturated pool", "workers", p.cfg.MaxSize, "queue_capacity", p.cfg.QueueCapacity)
	return ErrRejected
}

// Go submits f and logs when it is not admitted.
func (p *Pool) Go(ctx context.Context, f func(ctx context.Context) error) {
	if err := p.Submit(ctx, TaskFunc(f)); err != nil {
		slog.WarnContext(ctx, "goroutine not started", "because", err)
	}
}

func (p *Pool) admit(task job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.workers < p.cfg.CoreSize {
		p.spawn(task, true)
		return true
	}

	select {
	case p.queue <- task:
		p.metrics.setQueued(len(p.queue))
		return true
	default:
	}

	if p.workers < p.cfg.MaxSize {
		p.spawn(task, false)
		return true
	}

	return false
}

func (p *Pool) enqueueWait(ctx context.Context, task job) error {
	select {
	case p.queue <- task:
		p.metrics.setQueued(len(p.queue))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopping:
		return ErrStopped
	}
}

// spawn must be called with p.mu held.
func (p *Pool) spawn(first job, core bool) {
	p.workers++
	p.metrics.setWorkers(p.workers)
	p.wg.Add(1)
	go p.worker(first, core)
}

func (p *Pool) worker(first job, core bool) {
	defer p.wg.Done()

	// Diagnostic scope owned by this worker and reused by each of its tasks.
	ctx := pkglog.WithFields(p.ctx)

	p.run(ctx, first)
	for {
		task, ok := p.next(core)
		if !ok {
			return
		}
		p.run(ctx, task)
	}
}

func (p *Pool) next(core bool) (job, bool) {
	var idle <-chan time.Time
	if !core {
		timer := time.NewTimer(p.cfg.KeepAlive)
		defer timer.Stop()
		idle = timer.C
	}

	select {
	case task := <-p.queue:
		p.metrics.setQueued(len(p.queue))
		return task, true
	case <-idle:
		p.retire()
		return job{}, false
	case <-p.done:
		select {
		case task := <-p.queue:
			p.metrics.setQueued(len(p.queue))
			return task, true
		default:
			p.retire()
			return job{}, false
		}
	}
}

func (p *Pool) retire() {
	p.mu.Lock()
	p.workers--
	p.metrics.setWorkers(p.workers)
	p.mu.Unlock()
}

// job is a decorated task together with the report at its core.
type job struct {
	task   Task
	report *report
}

// report is the innermost layer of every job. It runs inside all decorators,
// so task errors and panics are handled with the task's own context, before
// PropagateContext clears it.
type report struct {
	pool    *Pool
	task    Task
	ran     bool
	outcome string
}

func (r *report) Run(ctx context.Context) (err error) {
	r.ran = true
	r.outcome = outcomeSuccess

	defer func() {
		if rvr := recover(); rvr != nil {
			r.outcome = outcomePanic
			err = nil
			slog.ErrorContext(ctx, "panic occurred in task", "panic", rvr, "stack", string(debug.Stack()))
		}
	}()

	if taskErr := r.task.Run(ctx); taskErr != nil {
		r.outcome = outcomeError
		r.pool.fail(ctx, taskErr)
		return taskErr
	}
	return nil
}

func (p *Pool) run(ctx context.Context, j job) {
	start := time.Now()
	outcome := outcomeSuccess

	// Only failures of the decorators themselves are seen here.
	defer func() {
		if rvr := recover(); rvr != nil {
			outcome = outcomePanic
			slog.ErrorContext(ctx, "panic occurred in task decorator", "panic", rvr, "stack", string(debug.Stack()))
		}
		p.metrics.taskFinished(outcome, time.Since(start))
	}()

	err := j.task.Run(ctx)
	switch {
	case j.report.ran:
		outcome = j.report.outcome
	case err != nil:
		outcome = outcomeError
		p.fail(ctx, err)
	}
}

func (p *Pool) fail(ctx context.Context, err error) {
	p.errMu.Lock()
	p.errs = append(p.errs, err)
	p.errMu.Unlock()

	p.cfg.ErrorHandler(ctx, err)
}

// Stats reports the current worker count and queue depth.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	workers := p.workers
	p.mu.Unlock()

	return Stats{
		Workers:       workers,
		Queued:        len(p.queue),
		CoreSize:      p.cfg.CoreSize,
		MaxSize:       p.cfg.MaxSize,
		QueueCapacity: p.cfg.QueueCapacity,
	}
}

// Stop refuses new tasks, lets the workers drain the queue and waits for them.
// It returns the errors returned by tasks so far, joined, plus ctx's error if
// the wait was cut short.
func (p *Pool) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.stopping)

		p.state.Lock()
		p.stopped = true
		close(p.done)
		p.state.Unlock()
	})

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return p.collected()
	case <-ctx.Done():
		return errors.Join(ctx.Err(), p.collected())
	}
}

func (p *Pool) collected() error {
	p.errMu.Lock()
	defer p.errMu.Unlock()

	return errors.Join(p.errs...)
}
