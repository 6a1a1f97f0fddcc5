package lifecycle

import "time"

// Handle is an opaque reference to a caller-managed asynchronous operation
// (a cancel func, a channel, an operation token). Loading and Updating carry
// one for the caller's own bookkeeping; this package never inspects it.
type Handle = any

// Value is the sealed state union over a value type T and an error type E.
// Exactly one of the seven variant structs implements it per instance, and
// no eighth variant can be defined outside this package, so consumers may
// type-switch over all seven and treat that as exhaustive.
//
// Values are immutable: transitions never mutate the current state, they
// return a fresh variant. A nil Value behaves like Uninitialized everywhere
// it is accepted.
type Value[T, E any] interface {
	variant(T, E)
}

// Uninitialized means no load has ever been attempted.
type Uninitialized[T, E any] struct{}

// Loading means a load is in progress. Prev, when non-nil, is the last value
// still worth showing while the load runs.
type Loading[T, E any] struct {
	Prev   *T
	Handle Handle
}

// Empty means the resource is confirmed to exist and be empty.
type Empty[T, E any] struct{}

// Ready holds the last confirmed good value.
type Ready[T, E any] struct {
	Value T
}

// Dirty holds a locally modified or cached value that the authoritative
// backend has not confirmed. Reason classifies why it is unconfirmed;
// EditedAt is optional (zero means not recorded).
type Dirty[T, E any] struct {
	Value    T
	Reason   DirtyReason
	EditedAt time.Time
	Prev     *T
}

// Updating means Value is being written right now. Prev, when non-nil, is
// the last confirmed value from before the write started.
type Updating[T, E any] struct {
	Value  T
	Prev   *T
	Handle Handle
}

// Failure means the last operation failed with Err. Prev, when non-nil, is a
// stale but still displayable value that survived the failure.
type Failure[T, E any] struct {
	Err  E
	Prev *T
}

func (Uninitialized[T, E]) variant(T, E) {}
func (Loading[T, E]) variant(T, E)       {}
func (Empty[T, E]) variant(T, E)         {}
func (Ready[T, E]) variant(T, E)         {}
func (Dirty[T, E]) variant(T, E)         {}
func (Updating[T, E]) variant(T, E)      {}
func (Failure[T, E]) variant(T, E)       {}

// Latest extracts the best previous value from an arbitrary state: the
// single value that best represents "the last thing we can still show". The
// priority is fixed — a currently live value outranks a recorded previous
// value, and a recorded previous value outranks nothing:
//
//	Ready    -> its value
//	Updating -> the value being written
//	Loading  -> Prev, if any
//	Dirty    -> its value
//	Failure  -> Prev, if any
//	anything else -> absent
//
// Every transition in this package runs Latest exactly once, seeded by the
// state being transitioned from.
func Latest[T, E any](v Value[T, E]) (T, bool) {
	switch s := v.(type) {
	case Ready[T, E]:
		return s.Value, true
	case Updating[T, E]:
		return s.Value, true
	case Loading[T, E]:
		if s.Prev != nil {
			return *s.Prev, true
		}
	case Dirty[T, E]:
		return s.Value, true
	case Failure[T, E]:
		if s.Prev != nil {
			return *s.Prev, true
		}
	}
	var zero T
	return zero, false
}

// latestPtr adapts Latest to the pointer shape the variant Prev fields use.
func latestPtr[T, E any](v Value[T, E]) *T {
	val, ok := Latest(v)
	if !ok {
		return nil
	}
	return &val
}

// ToLoading starts a load from cur. The new Loading's Prev is the best
// previous value of cur; handle may be nil.
func ToLoading[T, E any](cur Value[T, E], handle Handle) Loading[T, E] {
	return Loading[T, E]{Prev: latestPtr(cur), Handle: handle}
}

// ToUpdating starts writing next. The new Updating's Prev is the best
// previous value of cur, so the pre-write value stays displayable until the
// write resolves.
func ToUpdating[T, E any](cur Value[T, E], next T, handle Handle) Updating[T, E] {
	return Updating[T, E]{Value: next, Prev: latestPtr(cur), Handle: handle}
}

// ToDirty records a local modification of next. The reason defaults to
// Edited; use WithReason and WithEditedAt to override. The new Dirty's Prev
// is the best previous value of cur.
func ToDirty[T, E any](cur Value[T, E], next T, opts ...DirtyOption) Dirty[T, E] {
	settings := dirtySettings{reason: Edited}
	for _, opt := range opts {
		opt(&settings)
	}
	return Dirty[T, E]{
		Value:    next,
		Reason:   settings.reason,
		EditedAt: settings.editedAt,
		Prev:     latestPtr(cur),
	}
}

// ToFailure records that the last operation failed with err. The new
// Failure's Prev is the best previous value of cur, so a failure applied on
// top of an earlier failure keeps the original surviving value rather than
// dropping it.
func ToFailure[T, E any](cur Value[T, E], err E) Failure[T, E] {
	return Failure[T, E]{Err: err, Prev: latestPtr(cur)}
}

// DirtyOption customizes ToDirty.
type DirtyOption func(*dirtySettings)

type dirtySettings struct {
	reason   DirtyReason
	editedAt time.Time
}

// WithReason attaches a specific DirtyReason instead of the Edited default.
func WithReason(reason DirtyReason) DirtyOption {
	return func(s *dirtySettings) {
		if reason != nil {
			s.reason = reason
		}
	}
}

// WithEditedAt records when the local modification happened.
func WithEditedAt(at time.Time) DirtyOption {
	return func(s *dirtySettings) {
		s.editedAt = at
	}
}
