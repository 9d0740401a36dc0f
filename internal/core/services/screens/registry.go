package screens

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/services/polling"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownScreen   = errors.New("unknown screen")
	ErrUnknownResource = errors.New("unknown resource")
)

// Screen is a mount point. Mounting it polls Resources every Interval; an
// Interval of zero fetches once per mount.
type Screen struct {
	Path      string        `json:"path"`
	Title     string        `json:"title"`
	Resources []string      `json:"resources"`
	Interval  time.Duration `json:"interval"`
}

// Registry maps screen paths to the refresh tasks they drive.
type Registry struct {
	screens      map[string]Screen
	tasks        map[string]polling.Task
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewRegistry creates an empty registry. tasks maps resource names to their
// refresh task.
func NewRegistry(tasks map[string]polling.Task, fetchTimeout time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		screens:      make(map[string]Screen),
		tasks:        tasks,
		fetchTimeout: fetchTimeout,
		logger:       logger.With("component", "screens"),
	}
}

// Register adds or replaces a screen. Every resource must have a task.
func (r *Registry) Register(s Screen) error {
	for _, res := range s.Resources {
		if _, ok := r.tasks[res]; !ok {
			return ErrUnknownResource
		}
	}
	r.screens[s.Path] = s
	return nil
}

// Lookup returns the screen mounted at path.
func (r *Registry) Lookup(path string) (Screen, error) {
	s, ok := r.screens[path]
	if !ok {
		return Screen{}, ErrUnknownScreen
	}
	return s, nil
}

// Screens lists registered screens ordered by path.
func (r *Registry) Screens() []Screen {
	out := make([]Screen, 0, len(r.screens))
	for _, s := range r.screens {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Task returns the refresh task of a single resource.
func (r *Registry) Task(resource string) (polling.Task, error) {
	t, ok := r.tasks[resource]
	if !ok {
		return nil, ErrUnknownResource
	}
	return t, nil
}

// Mount starts a poller for one instance of the screen at path and returns
// the func that releases it. Screens without resources mount without polling.
func (r *Registry) Mount(ctx context.Context, path string) (func(), error) {
	s, err := r.Lookup(path)
	if err != nil {
		return nil, err
	}
	if len(s.Resources) == 0 {
		return func() {}, nil
	}

	c := polling.New(s.Path, r.screenTask(s),
		polling.WithInterval(s.Interval),
		polling.WithFetchTimeout(r.fetchTimeout),
		polling.WithLogger(r.logger),
	)
	return c.Activate(ctx)
}

// screenTask fans a refresh out to every resource of s.
func (r *Registry) screenTask(s Screen) polling.Task {
	tasks := make([]polling.Task, 0, len(s.Resources))
	for _, res := range s.Resources {
		tasks = append(tasks, r.tasks[res])
	}
	// A failing resource must not cancel its siblings, so the group has no
	// shared context.
	return func(ctx context.Context) error {
		var g errgroup.Group
		for _, t := range tasks {
			t := t
			g.Go(func() error { return t(ctx) })
		}
		return g.Wait()
	}
}
