package lifecycle

import (
	"errors"
	"testing"
)

// collapse runs Either with counting handlers so tests can assert that
// exactly one handler fired exactly once.
func collapse(t *testing.T, v Value[string, error]) (gotValue string, gotErr *error, valueCalls, noneCalls int) {
	t.Helper()
	Either(v,
		func(val string) struct{} {
			valueCalls++
			gotValue = val
			return struct{}{}
		},
		func(err *error) struct{} {
			noneCalls++
			gotErr = err
			return struct{}{}
		},
	)
	if valueCalls+noneCalls != 1 {
		t.Fatalf("exactly one handler must run once, got value=%d none=%d", valueCalls, noneCalls)
	}
	return gotValue, gotErr, valueCalls, noneCalls
}

func TestEitherCoversEveryVariant(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name      string
		state     Value[string, error]
		wantValue string
		wantNone  bool
		wantErr   error
	}{
		{"dirty", Dirty[string, error]{Value: "draft"}, "draft", false, nil},
		{"updating", Updating[string, error]{Value: "sending"}, "sending", false, nil},
		{"ready", Ready[string, error]{Value: "live"}, "live", false, nil},
		{"loading with prev", Loading[string, error]{Prev: strptr("X")}, "X", false, nil},
		{"failure with prev", Failure[string, error]{Err: boom, Prev: strptr("stale")}, "stale", false, nil},
		{"failure without prev", Failure[string, error]{Err: boom}, "", true, boom},
		{"uninitialized", Uninitialized[string, error]{}, "", true, nil},
		{"empty", Empty[string, error]{}, "", true, nil},
		{"loading without prev", Loading[string, error]{}, "", true, nil},
	}
	for _, tc := range cases {
		val, errPtr, valueCalls, noneCalls := collapse(t, tc.state)
		if tc.wantNone {
			if noneCalls != 1 {
				t.Fatalf("%s: expected the no-value handler, got value handler with %q", tc.name, val)
			}
			if tc.wantErr == nil && errPtr != nil {
				t.Fatalf("%s: expected no error, got %v", tc.name, *errPtr)
			}
			if tc.wantErr != nil && (errPtr == nil || *errPtr != tc.wantErr) {
				t.Fatalf("%s: expected error %v, got %v", tc.name, tc.wantErr, errPtr)
			}
			continue
		}
		if valueCalls != 1 || val != tc.wantValue {
			t.Fatalf("%s: expected value handler with %q, got %q (calls=%d)", tc.name, tc.wantValue, val, valueCalls)
		}
	}
}

func TestEitherReturnsHandlerResult(t *testing.T) {
	label := Either(Ready[string, error]{Value: "live"},
		func(val string) string { return "value:" + val },
		func(*error) string { return "none" },
	)
	if label != "value:live" {
		t.Fatalf("unexpected result %q", label)
	}
}

func TestValueOrNil(t *testing.T) {
	if got := ValueOrNil(Ready[string, error]{Value: "v"}); got == nil || *got != "v" {
		t.Fatalf("ready should expose its value, got %v", got)
	}
	if got := ValueOrNil(Loading[string, error]{Prev: strptr("p")}); got == nil || *got != "p" {
		t.Fatalf("loading with prev should expose prev, got %v", got)
	}
	if got := ValueOrNil(Failure[string, error]{Err: errors.New("x")}); got != nil {
		t.Fatalf("bare failure must yield nil, got %q", *got)
	}
	if got := ValueOrNil[string, error](Empty[string, error]{}); got != nil {
		t.Fatalf("empty must yield nil, got %q", *got)
	}
}

func TestEitherDoesNotRecomputeExtraction(t *testing.T) {
	// A hand-built Loading with no Prev collapses to "no value" even though
	// the caller could have derived one; Either trusts construction-time
	// fields only.
	val, errPtr, _, noneCalls := collapse(t, Loading[string, error]{})
	if noneCalls != 1 || errPtr != nil || val != "" {
		t.Fatalf("expected no-value with nil error, got val=%q err=%v", val, errPtr)
	}
}
