package resource_cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/freelancehub/agency-inbox/models"
	"github.com/freelancehub/agency-inbox/repositories/clock"
	"github.com/freelancehub/agency-inbox/utils"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL     = 45 * time.Second
	defaultMaxKeys = 1024
)

// Fetcher loads the current value of a resource. It must honour ctx.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Snapshot is the view of a cache entry at a point in time. Data is the last successfully
// fetched value and stays available while a new fetch is in flight or after a fetch failed.
type Snapshot[T any] struct {
	Data        T
	HasData     bool
	Loading     bool
	Err         error
	FromCache   bool
	LastUpdated time.Time
}

type entry[T any] struct {
	data        T
	hasData     bool
	err         error
	lastUpdated time.Time

	// callers currently waiting on a fetch of this key
	waiting int

	// gen is bumped by Invalidate. storedGen is the generation of the stored data.
	gen       uint64
	storedGen uint64
	stale     bool
}

// Store is a keyed, in-memory cache of remote resources with a freshness window. Concurrent
// fetches of the same key and generation are collapsed into one.
type Store[T any] struct {
	name  string
	ttl   time.Duration
	clock clock.Clock

	mu      sync.Mutex
	entries *lru.Cache[string, *entry[T]]
	group   singleflight.Group
	flights map[string]*flight
}

type Option func(*options)

type options struct {
	name    string
	ttl     time.Duration
	clock   clock.Clock
	maxKeys int
}

func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func WithMaxKeys(n int) Option {
	return func(o *options) {
		o.maxKeys = n
	}
}

// WithName sets the cache label of the store metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func NewStore[T any](opts ...Option) *Store[T] {
	o := &options{
		name:    "default",
		ttl:     defaultTTL,
		maxKeys: defaultMaxKeys,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.maxKeys <= 0 {
		o.maxKeys = defaultMaxKeys
	}

	entries, err := lru.New[string, *entry[T]](o.maxKeys)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}

	return &Store[T]{
		name:    o.name,
		ttl:     o.ttl,
		clock:   o.clock,
		entries: entries,
		flights: make(map[string]*flight),
	}
}

// Get returns the cached value of key when it is fresh, and fetches it otherwise. A failed fetch
// is reported in Snapshot.Err and keeps the previous data. The returned error is only set when
// the fetch was cancelled.
func (s *Store[T]) Get(ctx context.Context, key string, fetch Fetcher[T]) (Snapshot[T], error) {
	s.mu.Lock()
	e := s.entryLocked(key)
	if s.isFreshLocked(e) {
		snapshot := s.snapshotLocked(e)
		snapshot.FromCache = true
		s.mu.Unlock()
		s.countLookup("hit")
		return snapshot, nil
	}
	s.mu.Unlock()
	s.countLookup("miss")

	err := s.load(ctx, key, fetch)
	snapshot := s.Peek(key)
	snapshot.FromCache = snapshot.HasData && snapshot.Err != nil
	if err != nil && models.IsCancellation(err) {
		return snapshot, errors.Mark(err, models.ErrCancelled)
	}
	return snapshot, nil
}

// Refresh fetches key when its value is stale, or unconditionally when force is set. It returns
// the fetch error, if any.
func (s *Store[T]) Refresh(ctx context.Context, key string, fetch Fetcher[T], force bool) error {
	if !force {
		s.mu.Lock()
		fresh := s.isFreshLocked(s.entryLocked(key))
		s.mu.Unlock()
		if fresh {
			return nil
		}
	}

	err := s.load(ctx, key, fetch)
	if err != nil && models.IsCancellation(err) {
		return errors.Mark(err, models.ErrCancelled)
	}
	return err
}

// Peek returns the current state of key without fetching.
func (s *Store[T]) Peek(key string) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries.Peek(key)
	if !ok {
		return Snapshot[T]{}
	}
	snapshot := s.snapshotLocked(e)
	snapshot.FromCache = e.hasData
	return snapshot
}

// Invalidate marks key as stale and opens a new fetch generation: fetches started before the
// call are not joined by fetches started after it.
func (s *Store[T]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(key)
	e.gen++
	e.stale = true
}

// flight is a fetch shared by the callers of one key and generation. Its context outlives any
// single caller and is cancelled once every caller has given up on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
	started bool
}

func (s *Store[T]) load(ctx context.Context, key string, fetch Fetcher[T]) error {
	retry, err := s.loadOnce(ctx, key, fetch)
	if retry {
		_, err = s.loadOnce(ctx, key, fetch)
	}
	return err
}

// loadOnce waits for the shared fetch of key. retry is set when the caller joined a fetch that
// every earlier caller had already abandoned.
func (s *Store[T]) loadOnce(ctx context.Context, key string, fetch Fetcher[T]) (retry bool, err error) {
	s.mu.Lock()
	e := s.entryLocked(key)
	gen := e.gen
	e.waiting++
	flightKey := fmt.Sprintf("%s@%d", key, gen)
	f, ok := s.flights[flightKey]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		s.flights[flightKey] = f
	}
	f.waiters++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if e, ok := s.entries.Peek(key); ok && e.waiting > 0 {
			e.waiting--
		}
		f.waiters--
		if f.waiters == 0 {
			f.cancel()
			if s.flights[flightKey] == f {
				delete(s.flights, flightKey)
			}
		}
		s.mu.Unlock()
	}()

	ch := s.group.DoChan(flightKey, func() (any, error) {
		s.mu.Lock()
		f.started = true
		s.mu.Unlock()
		data, err := fetch(f.ctx)
		s.store(key, gen, data, err)
		return nil, err
	})

	select {
	case res := <-ch:
		s.mu.Lock()
		joinedAbandoned := !f.started
		s.mu.Unlock()
		if res.Err != nil && models.IsCancellation(res.Err) && ctx.Err() == nil && joinedAbandoned {
			return true, res.Err
		}
		return false, res.Err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (s *Store[T]) store(key string, gen uint64, data T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(key)
	if gen < e.storedGen {
		s.countFetch("superseded")
		return
	}

	switch {
	case err == nil:
		e.data = data
		e.hasData = true
		e.err = nil
		e.lastUpdated = s.clock.Now()
		e.storedGen = gen
		if gen == e.gen {
			e.stale = false
		}
		s.countFetch("success")
	case models.IsCancellation(err):
		s.countFetch("cancelled")
	default:
		e.err = err
		s.countFetch("error")
	}
}

func (s *Store[T]) entryLocked(key string) *entry[T] {
	if e, ok := s.entries.Get(key); ok {
		return e
	}
	e := &entry[T]{}
	s.entries.Add(key, e)
	return e
}

func (s *Store[T]) isFreshLocked(e *entry[T]) bool {
	return e.hasData && !e.stale && s.clock.Now().Sub(e.lastUpdated) < s.ttl
}

func (s *Store[T]) snapshotLocked(e *entry[T]) Snapshot[T] {
	return Snapshot[T]{
		Data:        e.data,
		HasData:     e.hasData,
		Loading:     e.waiting > 0,
		Err:         e.err,
		LastUpdated: e.lastUpdated,
	}
}

func (s *Store[T]) countLookup(result string) {
	utils.MetricCacheLookups.With(prometheus.Labels{"cache": s.name, "result": result}).Inc()
}

func (s *Store[T]) countFetch(outcome string) {
	utils.MetricCacheFetches.With(prometheus.Labels{"cache": s.name, "outcome": outcome}).Inc()
}
