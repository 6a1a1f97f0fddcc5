package lifecycle

// DirtyReason classifies why a Dirty value is considered locally modified or
// not yet confirmed. The set is open: callers define new reasons by
// implementing the interface on any type of their own. Reasons only need to
// be distinguishable by identity or type; nothing compares them by value.
type DirtyReason interface {
	// Reason returns a short stable name suitable for logs and labels.
	Reason() string
}

type builtinReason string

func (r builtinReason) Reason() string { return string(r) }

// Built-in reasons.
var (
	// Edited marks a value changed locally, not yet validated or saved.
	Edited DirtyReason = builtinReason("edited")
	// Validated marks a value that passed validation but is not yet saved.
	Validated DirtyReason = builtinReason("validated")
	// Cached marks a value sourced from a local cache and not yet confirmed
	// by the authoritative backend.
	Cached DirtyReason = builtinReason("cached")
)
