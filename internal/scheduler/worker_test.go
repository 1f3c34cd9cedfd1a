package scheduler

import (
	"errors"
	"testing"

	"castmatch_backend/platform/apperr"
)

func TestBenignIfStaleCompletesStaleTasks(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"no error", nil},
		{"entity deleted", apperr.NotFound("casting call not found")},
		{"call closed", apperr.Gone("casting call is no longer open")},
		{"profile incomplete", apperr.Validation("profile onboarding is not complete")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := benignIfStale(tc.err); got != nil {
				t.Fatalf("benignIfStale(%v) = %v, want nil", tc.err, got)
			}
		})
	}
}

func TestBenignIfStalePropagatesRealFailures(t *testing.T) {
	internal := apperr.Internal("database unavailable")
	if got := benignIfStale(internal); !errors.Is(got, internal) {
		t.Fatalf("internal error must propagate for retry, got %v", got)
	}

	plain := errors.New("dial tcp: connection refused")
	if got := benignIfStale(plain); !errors.Is(got, plain) {
		t.Fatalf("untyped error must propagate for retry, got %v", got)
	}
}
