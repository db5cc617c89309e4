package viewstate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"weather-check/internal/models"
	"weather-check/pkg/logger"
)

const (
	displayDateLayout    = "January 2, 2006"
	subscriberBufferSize = 8
)

// Fetcher is the pipeline the controller drives.
type Fetcher interface {
	Fetch(ctx context.Context, query models.LocationQuery) (models.Report, error)
}

type Options struct {
	DefaultLocation models.LocationQuery
	// RequestTimeout bounds one search cycle; zero means no bound.
	RequestTimeout time.Duration
}

// Controller owns the ViewState. Every search starts a new generation and
// cancels the one before it; only the latest generation may commit, so
// overlapping searches resolve to the most recent request rather than the
// slowest one.
type Controller struct {
	fetcher Fetcher
	l       *logger.Logger
	opts    Options
	now     func() time.Time

	mu          sync.RWMutex
	state       models.ViewState
	generation  uint64
	cancelCycle context.CancelFunc
	subscribers map[chan models.ViewState]struct{}
	closed      bool

	mounted atomic.Bool
}

func NewController(fetcher Fetcher, l *logger.Logger, opts Options) *Controller {
	opts.DefaultLocation = opts.DefaultLocation.Normalize()

	return &Controller{
		fetcher: fetcher,
		l:       l,
		opts:    opts,
		now:     time.Now,
		state: models.ViewState{
			Location: opts.DefaultLocation.Name,
			Country:  opts.DefaultLocation.Country,
			Phase:    models.PhaseIdle,
		},
		subscribers: make(map[chan models.ViewState]struct{}),
	}
}

// Mount runs the first search for the default location. The controller
// counts as mounted afterwards whatever the outcome.
func (c *Controller) Mount(ctx context.Context) (models.ViewState, error) {
	defer c.mounted.Store(true)
	return c.Search(ctx, c.opts.DefaultLocation)
}

func (c *Controller) Mounted() bool {
	return c.mounted.Load()
}

// Search runs one full cycle for query and returns the state it left
// behind. When a newer search starts before this one finishes, the result
// is discarded and the error wraps models.ErrSuperseded.
func (c *Controller) Search(ctx context.Context, query models.LocationQuery) (models.ViewState, error) {
	query = query.Normalize()

	cycleCtx, cancel, gen, err := c.begin(ctx, query)
	if err != nil {
		return c.Snapshot(), err
	}
	defer cancel()

	report, fetchErr := c.fetcher.Fetch(cycleCtx, query)

	return c.commit(gen, query, report, fetchErr)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() models.ViewState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// Subscribe delivers a snapshot after every transition. Slow subscribers
// miss intermediate states instead of blocking the controller. The returned
// func unsubscribes and closes the channel.
func (c *Controller) Subscribe() (<-chan models.ViewState, func()) {
	ch := make(chan models.ViewState, subscriberBufferSize)

	c.mu.Lock()
	if c.closed {
		close(ch)
		c.mu.Unlock()
		return ch, func() {}
	}
	c.subscribers[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subscribers[ch]; ok {
				delete(c.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Close cancels the in-flight cycle and closes every subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.cancelCycle != nil {
		c.cancelCycle()
		c.cancelCycle = nil
	}
	for ch := range c.subscribers {
		delete(c.subscribers, ch)
		close(ch)
	}
}

func (c *Controller) begin(ctx context.Context, query models.LocationQuery) (context.Context, context.CancelFunc, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, nil, 0, models.NewError(models.ErrorKindCanceled, "search", errors.New("controller is closed"))
	}

	if c.cancelCycle != nil {
		c.cancelCycle()
		c.l.Debug("cancelled superseded search", map[string]any{"generation": c.generation})
	}

	c.generation++
	gen := c.generation

	var (
		cycleCtx context.Context
		cancel   context.CancelFunc
	)
	if c.opts.RequestTimeout > 0 {
		cycleCtx, cancel = context.WithTimeout(ctx, c.opts.RequestTimeout)
	} else {
		cycleCtx, cancel = context.WithCancel(ctx)
	}
	c.cancelCycle = cancel

	c.state.Location = query.Name
	c.state.Country = query.Country
	c.state.Phase = models.PhaseLoading
	c.state.Loading = true
	c.state.Error = nil
	c.state.Generation = gen
	c.publishLocked()

	c.l.Info("search started", map[string]any{
		"query":      query.GeocoderParam(),
		"generation": gen,
	})

	return cycleCtx, cancel, gen, nil
}

func (c *Controller) commit(gen uint64, query models.LocationQuery, report models.Report, fetchErr error) (models.ViewState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.closed {
		c.l.Debug("discarding superseded search result", map[string]any{
			"query":      query.GeocoderParam(),
			"generation": gen,
			"latest":     c.generation,
		})
		return c.state.Clone(), models.NewError(models.ErrorKindCanceled, "search", models.ErrSuperseded)
	}
	c.cancelCycle = nil

	if fetchErr != nil {
		kind := models.KindOf(fetchErr)
		c.state.Phase = models.PhaseError
		c.state.Loading = false
		c.state.Error = &models.ViewError{Kind: kind, Message: kind.Message()}
		c.state.Stale = len(c.state.Series) > 0 || !c.state.Aggregates.Empty()
		c.state.UpdatedAt = c.now()
		c.publishLocked()

		c.logFailure(query, gen, kind, fetchErr)
		return c.state.Clone(), fetchErr
	}

	c.state = models.ViewState{
		Location:   query.Name,
		Country:    query.Country,
		Place:      report.Place,
		Phase:      models.PhaseReady,
		Loading:    false,
		Series:     report.Series.Clone(),
		Aggregates: report.Aggregates.Clone(),
		Current:    report.Current,
		Generation: gen,
		Date:       report.FetchedAt.Format(displayDateLayout),
		UpdatedAt:  c.now(),
	}
	c.publishLocked()

	c.l.Info("search completed", map[string]any{
		"query":      query.GeocoderParam(),
		"place":      report.Place,
		"generation": gen,
		"hours":      len(report.Series),
	})

	return c.state.Clone(), nil
}

func (c *Controller) logFailure(query models.LocationQuery, gen uint64, kind models.ErrorKind, err error) {
	fields := map[string]any{
		"query":      query.GeocoderParam(),
		"generation": gen,
		"kind":       string(kind),
	}

	switch kind {
	case models.ErrorKindInvalidQuery, models.ErrorKindLocationNotFound, models.ErrorKindCanceled:
		fields["err"] = err.Error()
		c.l.Warning("search failed", fields)
	default:
		c.l.Error(errors.Wrap(err, "search failed"), fields)
	}
}

// publishLocked must be called with c.mu held.
func (c *Controller) publishLocked() {
	for ch := range c.subscribers {
		select {
		case ch <- c.state.Clone():
		default:
		}
	}
}
