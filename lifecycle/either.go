package lifecycle

// Either collapses the seven variants down to a binary outcome and invokes
// exactly one of the two handlers exactly once, returning its result. The
// routing is a fixed priority, first match wins:
//
//	Dirty, Updating, Ready          -> onValue with the variant's value
//	Loading with a non-nil Prev     -> onValue with Prev
//	Failure with a non-nil Prev     -> onValue with Prev (stale but usable)
//	Failure with a nil Prev         -> onNone with the failure's error
//	Uninitialized, Empty,
//	Loading with a nil Prev         -> onNone with a nil error
//
// Either reads the Prev and Value fields materialized at construction time;
// it never re-derives the best previous value.
//
// Known limitation: a Failure that still carries a usable Prev routes to
// onValue and the error is not surfaced. Callers that need the stale value
// and the error at the same time should type-switch on Failure directly
// instead of collapsing.
func Either[T, E, R any](v Value[T, E], onValue func(T) R, onNone func(*E) R) R {
	switch s := v.(type) {
	case Dirty[T, E]:
		return onValue(s.Value)
	case Updating[T, E]:
		return onValue(s.Value)
	case Ready[T, E]:
		return onValue(s.Value)
	case Loading[T, E]:
		if s.Prev != nil {
			return onValue(*s.Prev)
		}
		return onNone(nil)
	case Failure[T, E]:
		if s.Prev != nil {
			return onValue(*s.Prev)
		}
		err := s.Err
		return onNone(&err)
	}
	return onNone(nil)
}

// ValueOrNil reduces a state to a nullable value: the usable value when
// Either routes to the value handler, nil otherwise regardless of error.
func ValueOrNil[T, E any](v Value[T, E]) *T {
	return Either(v, func(val T) *T { return &val }, func(*E) *T { return nil })
}
