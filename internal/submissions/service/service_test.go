package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"castmatch_backend/internal/events"
	"castmatch_backend/internal/matching"
	"castmatch_backend/internal/submissions/repository"
	"castmatch_backend/internal/submissions/transport"
	"castmatch_backend/platform/apperr"
	"castmatch_backend/platform/logger"
)

func intptr(v int) *int { return &v }

type fakeProfiles struct {
	profile matching.Profile
	err     error
}

func (f *fakeProfiles) GetCompletedByAccount(context.Context, uuid.UUID) (matching.Profile, error) {
	if f.err != nil {
		return matching.Profile{}, f.err
	}
	return f.profile, nil
}

type fakeCalls struct {
	call matching.CastingCall
	err  error
}

func (f *fakeCalls) GetOpen(context.Context, uuid.UUID) (matching.CastingCall, error) {
	if f.err != nil {
		return matching.CastingCall{}, f.err
	}
	return f.call, nil
}

func (f *fakeCalls) ListOpen(context.Context) ([]matching.CastingCall, error) {
	return []matching.CastingCall{f.call}, nil
}

type fakeRepo struct {
	created   bool
	duplicate bool
	got       repository.RecordParams
}

func (f *fakeRepo) Record(_ context.Context, params repository.RecordParams) (matching.RecordedSubmission, bool, error) {
	f.got = params
	if f.duplicate {
		return matching.RecordedSubmission{}, false, nil
	}
	f.created = true
	return matching.RecordedSubmission{ID: uuid.New(), CreatedAt: time.Now()}, true, nil
}

func (f *fakeRepo) GetByID(context.Context, uuid.UUID) (repository.Submission, error) {
	return repository.Submission{}, apperr.NotFound("submission not found")
}

func (f *fakeRepo) ListForProfile(context.Context, uuid.UUID) ([]repository.SubmissionDetail, error) {
	return nil, nil
}

func (f *fakeRepo) ListForCall(context.Context, uuid.UUID) ([]repository.SubmissionDetail, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status repository.Status) (repository.Submission, error) {
	return repository.Submission{ID: id, Status: status}, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func completedProfile() matching.Profile {
	return matching.Profile{
		ID:                  uuid.New(),
		AccountID:           uuid.New(),
		Name:                "Maya Chen",
		Email:               "maya@example.com",
		Age:                 intptr(30),
		Gender:              matching.GenderFemale,
		City:                "Springfield",
		Region:              "Illinois",
		UnionStatus:         matching.UnionMember,
		Ethnicity:           matching.Ethnicity("ASIAN"),
		OnboardingCompleted: true,
	}
}

func openCall() matching.CastingCall {
	return matching.CastingCall{
		ID:          uuid.New(),
		Title:       "Supporting Role",
		AgeMin:      25,
		AgeMax:      35,
		Gender:      matching.GenderMale, // mismatch keeps the score below threshold
		UnionStatus: matching.UnionMember,
		Ethnicity:   matching.EthnicityAny,
		Location:    "Chicago, IL",
		RoleType:    matching.RoleTelevision,
		Deadline:    time.Now().Add(24 * time.Hour),
		Status:      matching.CallStatusActive,
	}
}

func TestCreateManualBypassesThreshold(t *testing.T) {
	call := openCall()
	repo := &fakeRepo{}
	bus := &recordingBus{}
	svc := New(repo, &fakeProfiles{profile: completedProfile()}, &fakeCalls{call: call}, bus, logger.New("development"))

	resp, err := svc.CreateManual(context.Background(), uuid.New(), transport.CreateSubmissionRequest{
		CastingCallID: call.ID.String(),
	})
	if err != nil {
		t.Fatalf("CreateManual returned error: %v", err)
	}

	// 30 + 0 + 15 + 15 + 10 = 70, below the auto threshold, recorded anyway.
	if resp.MatchScore != 70 {
		t.Fatalf("expected score 70, got %d", resp.MatchScore)
	}
	if resp.WouldAutoMatch {
		t.Fatal("a 70 score must not report as auto-matchable")
	}
	if repo.got.Method != matching.MethodManual {
		t.Fatalf("expected manual method, got %q", repo.got.Method)
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.events))
	}
	recorded, ok := bus.events[0].(events.SubmissionRecorded)
	if !ok {
		t.Fatalf("expected SubmissionRecorded, got %T", bus.events[0])
	}
	if recorded.Method != string(matching.MethodManual) || recorded.Score != 70 {
		t.Fatalf("unexpected event payload: %+v", recorded)
	}
}

func TestCreateManualDuplicateIsConflict(t *testing.T) {
	call := openCall()
	repo := &fakeRepo{duplicate: true}
	bus := &recordingBus{}
	svc := New(repo, &fakeProfiles{profile: completedProfile()}, &fakeCalls{call: call}, bus, logger.New("development"))

	_, err := svc.CreateManual(context.Background(), uuid.New(), transport.CreateSubmissionRequest{
		CastingCallID: call.ID.String(),
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error for duplicate pair, got %v", err)
	}
	if len(bus.events) != 0 {
		t.Fatal("duplicate submission must not publish an event")
	}
}

func TestCreateManualClosedCallRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &fakeProfiles{profile: completedProfile()}, &fakeCalls{err: apperr.Gone("casting call is no longer open")}, &recordingBus{}, logger.New("development"))

	_, err := svc.CreateManual(context.Background(), uuid.New(), transport.CreateSubmissionRequest{
		CastingCallID: uuid.New().String(),
	})
	if !apperr.Is(err, apperr.KindGone) {
		t.Fatalf("expected gone error, got %v", err)
	}
	if repo.created {
		t.Fatal("nothing may be recorded for a closed call")
	}
}

func TestCreateManualInvalidCallID(t *testing.T) {
	svc := New(&fakeRepo{}, &fakeProfiles{profile: completedProfile()}, &fakeCalls{call: openCall()}, &recordingBus{}, logger.New("development"))

	_, err := svc.CreateManual(context.Background(), uuid.New(), transport.CreateSubmissionRequest{
		CastingCallID: "not-a-uuid",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := New(&fakeRepo{}, &fakeProfiles{profile: completedProfile()}, &fakeCalls{call: openCall()}, &recordingBus{}, logger.New("development"))

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), repository.Status("archived"))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
