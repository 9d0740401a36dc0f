package polling

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
)

const (
	DefaultInterval     = 30 * time.Second
	DefaultFetchTimeout = 15 * time.Second
)

var ErrAlreadyActive = errors.New("poller already active")

// Task is one refresh pass, e.g. refresh.Loader.Refresh.
type Task func(ctx context.Context) error

// Controller drives a Task for one screen instance: once on activation, then
// on every tick until deactivated. Ticks do not wait for the previous fetch.
// Fetches already started are not cancelled by Deactivate; they run on a
// context detached from the activation and bounded by the fetch timeout.
type Controller struct {
	name         string
	task         Task
	interval     time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	loopDone   chan struct{}
	activation uint64

	inflight sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the tick period. Zero or negative disables ticking: the
// task runs once per activation.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithFetchTimeout bounds each task run.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates an inactive controller for the screen called name.
func New(name string, task Task, opts ...Option) *Controller {
	c := &Controller{
		name:         name,
		task:         task,
		interval:     DefaultInterval,
		fetchTimeout: DefaultFetchTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "poller", "screen", name)
	return c
}

// Active reports whether the controller holds a timer.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Activate runs the task immediately and starts the ticker. The returned stop
// func deactivates this activation only; it is a no-op once the controller
// was deactivated or reactivated by someone else.
func (c *Controller) Activate(ctx context.Context) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return nil, ErrAlreadyActive
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.activation++
	id := c.activation
	done := make(chan struct{})
	c.loopDone = done

	telemetry.ActivePollers.WithLabelValues(c.name).Inc()
	c.logger.Debug("Poller activated", "interval", c.interval)

	c.launch(loopCtx)

	if c.interval > 0 {
		go c.loop(loopCtx, done)
	} else {
		close(done)
	}

	return func() { c.deactivate(id) }, nil
}

// Deactivate stops the ticker. After it returns no new task run starts.
// Calling it on an inactive controller is a no-op.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Run activates the controller, blocks until ctx is done and deactivates.
func (c *Controller) Run(ctx context.Context) error {
	stop, err := c.Activate(ctx)
	if err != nil {
		return err
	}
	defer stop()
	<-ctx.Done()
	return nil
}

// Wait blocks until every task run started so far has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) deactivate(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activation != id {
		return
	}
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.loopDone
	c.cancel = nil
	c.loopDone = nil
	telemetry.ActivePollers.WithLabelValues(c.name).Dec()
	c.logger.Debug("Poller deactivated")
}

func (c *Controller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.launch(ctx)
		}
	}
}

// launch starts one task run detached from ctx cancellation.
func (c *Controller) launch(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer cancel()
		if err := c.task(runCtx); err != nil {
			c.logger.Warn("Refresh failed", "error", err)
		}
	}()
}
