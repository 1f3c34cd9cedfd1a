package matching

import (
	"testing"
	"time"
)

func TestCastingCallOpenAt(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		status   CallStatus
		deadline time.Time
		want     bool
	}{
		{"active before deadline", CallStatusActive, now.Add(time.Hour), true},
		{"active at deadline", CallStatusActive, now, false},
		{"active past deadline", CallStatusActive, now.Add(-time.Minute), false},
		{"closed before deadline", CallStatusClosed, now.Add(time.Hour), false},
		{"closed past deadline", CallStatusClosed, now.Add(-time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			call := CastingCall{Status: tc.status, Deadline: tc.deadline}
			if got := call.OpenAt(now); got != tc.want {
				t.Fatalf("OpenAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRequirementWildcards(t *testing.T) {
	if !GenderAny.Matches(GenderNonBinary) {
		t.Fatal("ANY gender requirement must accept every profile value")
	}
	if GenderFemale.Matches("") {
		t.Fatal("a concrete gender requirement must reject a missing profile value")
	}
	if !UnionEither.Matches(UnionNonUnion) {
		t.Fatal("EITHER union requirement must accept every profile value")
	}
	if !EthnicityAny.Matches("HISPANIC") {
		t.Fatal("ANY ethnicity requirement must accept every profile value")
	}
}
