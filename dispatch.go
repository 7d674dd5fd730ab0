package versiondispatch

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/BenjaminBossan/versiondispatch/facts"
	"github.com/BenjaminBossan/versiondispatch/internal/predicate"
)

// Dispatcher holds a default implementation and an ordered registration
// table of predicate-guarded alternatives. T is normally a function type;
// the dispatcher never invokes it, it only selects and returns it.
//
// Lifecycle: Open (accepting Register calls) until the first Call, which
// resolves the table exactly once and binds the winner. Register returns
// ErrBound afterwards. Reset re-opens the table.
type Dispatcher[T any] struct {
	def     T
	facts   facts.Source
	logger  *slog.Logger
	entries []entry[T]

	mu      sync.Mutex
	binding atomic.Pointer[binding[T]]
}

// entry is one registration: a parsed predicate guarding an alternative
// implementation, plus an optional warning.
type entry[T any] struct {
	pred    predicate.Predicate
	impl    T
	warning *WarningSpec
}

// binding is the artifact of resolution: the winning implementation, the
// predicate text that selected it, and the warning to emit per call.
type binding[T any] struct {
	impl    T
	matched string
	warning *WarningSpec
}

// New creates a Dispatcher with def as the default implementation, used
// when no registered predicate matches.
func New[T any](def T, opts ...Option) *Dispatcher[T] {
	cfg := config{facts: facts.System()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dispatcher[T]{
		def:    def,
		facts:  cfg.facts,
		logger: cfg.logger,
	}
}

// Register appends an alternative implementation guarded by a predicate.
// The predicate is parsed and validated immediately; malformed predicates
// fail here, before any call can occur, with an *InvalidPredicateError.
// Registering after the dispatcher has resolved returns ErrBound.
//
// Nothing is evaluated yet: whether the predicate matches is decided once,
// at first call.
func (d *Dispatcher[T]) Register(pred string, impl T, opts ...RegisterOption) error {
	p, err := predicate.Parse(pred)
	if err != nil {
		return err
	}

	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.binding.Load() != nil {
		return fmt.Errorf("register %q: %w", pred, ErrBound)
	}
	d.entries = append(d.entries, entry[T]{pred: p, impl: impl, warning: cfg.warning})
	return nil
}

// MustRegister is like Register but panics on error. Registrations
// normally live in init functions where a malformed predicate is a
// programming error.
func (d *Dispatcher[T]) MustRegister(pred string, impl T, opts ...RegisterOption) {
	if err := d.Register(pred, impl, opts...); err != nil {
		panic(err)
	}
}

// Call returns the selected implementation. The first Call resolves the
// registration table; subsequent calls return the bound implementation
// with no predicate evaluation. If the winning registration carries a
// warning, every Call emits it before returning.
//
// Call sites invoke the result directly:
//
//	result := d.Call()(args...)
func (d *Dispatcher[T]) Call() T {
	b := d.binding.Load()
	if b == nil {
		b = d.resolve()
	}
	if b.warning != nil {
		d.warn(b)
	}
	return b.impl
}

// Matched returns the predicate text of the winning registration, or ""
// when the default implementation was selected. It forces resolution.
// Intended for debugging and tests.
func (d *Dispatcher[T]) Matched() string {
	b := d.binding.Load()
	if b == nil {
		b = d.resolve()
	}
	return b.matched
}

// Reset discards the binding so the next Call re-evaluates all
// predicates. Facts are fixed for the process lifetime in normal
// operation; Reset exists for tests and for the rare case of restored
// state that was bound under different facts.
func (d *Dispatcher[T]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.binding.Store(nil)
}

// resolve walks the registration table in source order, evaluates each
// predicate, and binds the last matching entry (or the default when none
// match). Concurrent first calls race to resolve; the mutex ensures a
// single winner and all callers observe the same binding.
func (d *Dispatcher[T]) resolve() *binding[T] {
	d.mu.Lock()
	defer d.mu.Unlock()

	if b := d.binding.Load(); b != nil {
		return b
	}

	b := &binding[T]{impl: d.def}
	for _, e := range d.entries {
		ok, err := e.pred.Eval(d.facts)
		if err != nil {
			// The fact source itself is broken (corrupt build
			// metadata). Not recoverable, and retrying cannot help.
			panic(fmt.Sprintf("versiondispatch: fact query failed: %v", err))
		}
		if ok {
			b.impl = e.impl
			b.matched = e.pred.Text()
			b.warning = e.warning
		}
	}

	d.binding.Store(b)
	return b
}

func (d *Dispatcher[T]) warn(b *binding[T]) {
	logger := d.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(b.warning.Message,
		slog.String("category", b.warning.Category),
		slog.String("predicate", b.matched),
	)
}
