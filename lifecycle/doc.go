// Package lifecycle models the full asynchronous life of a single piece of
// data — load, ready, edit, update, success or failure — as one closed set of
// mutually exclusive states. It replaces the usual tangle of nullable fields
// and boolean flags with a sealed Value union, four named transitions that
// carry the best previous value forward, and an Either collapse that reduces
// the seven variants to "usable value" versus "no value, optional error".
package lifecycle
