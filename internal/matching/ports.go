package matching

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Method tags how a submission was created.
type Method string

const (
	MethodAuto   Method = "auto"
	MethodManual Method = "manual"
)

// ProfileSource supplies matchable profiles to the engine.
type ProfileSource interface {
	// GetCompleted returns the profile when its onboarding is complete.
	GetCompleted(ctx context.Context, id uuid.UUID) (Profile, error)
	// ListCompleted returns every profile with completed onboarding.
	ListCompleted(ctx context.Context) ([]Profile, error)
}

// CallSource supplies casting calls to the engine.
type CallSource interface {
	// GetOpen returns the call when it is active and its deadline has not passed.
	GetOpen(ctx context.Context, id uuid.UUID) (CastingCall, error)
	// ListOpen returns every active call whose deadline is in the future.
	ListOpen(ctx context.Context) ([]CastingCall, error)
}

// RecordSubmissionParams carries one submission attempt to the recorder.
type RecordSubmissionParams struct {
	ProfileID     uuid.UUID
	CastingCallID uuid.UUID
	Method        Method
	Score         int
}

// RecordedSubmission identifies a newly created submission row.
type RecordedSubmission struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// SubmissionRecorder attempts an insert guarded by the (profile, call)
// uniqueness constraint. A duplicate pair is NOT an error: it returns
// created=false so callers skip silently. This constraint is the only
// synchronization between concurrent fanouts and manual submissions.
type SubmissionRecorder interface {
	Record(ctx context.Context, params RecordSubmissionParams) (RecordedSubmission, bool, error)
}

// FanoutEnqueuer hands a fanout off to background execution.
type FanoutEnqueuer interface {
	EnqueueCallFanout(ctx context.Context, callID uuid.UUID) error
	EnqueueProfileFanout(ctx context.Context, profileID uuid.UUID) error
}
