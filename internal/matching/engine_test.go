package matching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"castmatch_backend/internal/events"
	"castmatch_backend/platform/apperr"
	"castmatch_backend/platform/logger"
)

type fakeProfiles struct {
	profiles []Profile
	listErr  error
}

func (f *fakeProfiles) GetCompleted(_ context.Context, id uuid.UUID) (Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return Profile{}, apperr.NotFound("profile not found")
}

func (f *fakeProfiles) ListCompleted(context.Context) ([]Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.profiles, nil
}

type fakeCalls struct {
	calls []CastingCall
}

func (f *fakeCalls) GetOpen(_ context.Context, id uuid.UUID) (CastingCall, error) {
	for _, c := range f.calls {
		if c.ID == id {
			return c, nil
		}
	}
	return CastingCall{}, apperr.NotFound("casting call not found")
}

func (f *fakeCalls) ListOpen(context.Context) ([]CastingCall, error) {
	return f.calls, nil
}

type pairKey struct {
	profileID uuid.UUID
	callID    uuid.UUID
}

// fakeRecorder mimics the database uniqueness constraint: the first insert
// for a pair wins, every later one reports created=false.
type fakeRecorder struct {
	mu      sync.Mutex
	rows    map[pairKey]uuid.UUID
	failFor map[uuid.UUID]error // keyed by profile ID
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{rows: make(map[pairKey]uuid.UUID)}
}

func (f *fakeRecorder) Record(_ context.Context, params RecordSubmissionParams) (RecordedSubmission, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failFor[params.ProfileID]; err != nil {
		return RecordedSubmission{}, false, err
	}

	key := pairKey{params.ProfileID, params.CastingCallID}
	if _, exists := f.rows[key]; exists {
		return RecordedSubmission{}, false, nil
	}

	id := uuid.New()
	f.rows[key] = id
	return RecordedSubmission{ID: id, CreatedAt: time.Now()}, true, nil
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
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

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.Publish(context.Background(), event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]events.Event, len(b.events))
	copy(out, b.events)
	return out
}

func matchingProfile(name string) Profile {
	return Profile{
		ID:          uuid.New(),
		Name:        name,
		Email:       name + "@example.com",
		Age:         intptr(30),
		Gender:      GenderFemale,
		City:        "Springfield",
		Region:      "Illinois",
		UnionStatus: UnionMember,
		Ethnicity:   Ethnicity("ASIAN"),
	}
}

func openCall(title string) CastingCall {
	return CastingCall{
		ID:          uuid.New(),
		Title:       title,
		AgeMin:      25,
		AgeMax:      35,
		Gender:      GenderFemale,
		UnionStatus: UnionMember,
		Ethnicity:   EthnicityAny,
		Location:    "Chicago, IL",
		RoleType:    RoleFilm,
		Deadline:    time.Now().Add(24 * time.Hour),
		Status:      CallStatusActive,
	}
}

// fanoutParallelism satisfies config.MatchingConfig for tests.
type fanoutParallelism int

func (p fanoutParallelism) GetFanoutParallelism() int { return int(p) }

func newTestEngine(profiles *fakeProfiles, calls *fakeCalls, recorder *fakeRecorder, bus *recordingBus) *Engine {
	return NewEngine(profiles, calls, recorder, bus, logger.New("development"), fanoutParallelism(4))
}

func TestCallFanoutSubmitsOnlyAboveThreshold(t *testing.T) {
	strong := matchingProfile("strong")
	weak := matchingProfile("weak")
	weak.UnionStatus = UnionNonUnion // 90 -> 75, below threshold

	call := openCall("Lead Detective")
	recorder := newFakeRecorder()
	bus := &recordingBus{}
	engine := newTestEngine(&fakeProfiles{profiles: []Profile{strong, weak}}, &fakeCalls{calls: []CastingCall{call}}, recorder, bus)

	result, err := engine.CallFanout(context.Background(), call.ID)
	if err != nil {
		t.Fatalf("CallFanout returned error: %v", err)
	}

	if result.Evaluated != 2 || result.Submitted != 1 || result.BelowThreshold != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if recorder.count() != 1 {
		t.Fatalf("expected 1 recorded submission, got %d", recorder.count())
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(published))
	}
	recorded, ok := published[0].(events.SubmissionRecorded)
	if !ok {
		t.Fatalf("expected SubmissionRecorded event, got %T", published[0])
	}
	if recorded.ProfileID != strong.ID || recorded.Method != string(MethodAuto) || recorded.Score != 90 {
		t.Fatalf("unexpected event payload: %+v", recorded)
	}
}

func TestCallFanoutMissingCallIsFatal(t *testing.T) {
	recorder := newFakeRecorder()
	engine := newTestEngine(&fakeProfiles{}, &fakeCalls{}, recorder, &recordingBus{})

	if _, err := engine.CallFanout(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown call")
	}
}

func TestCallFanoutEnumerationFailureIsFatal(t *testing.T) {
	call := openCall("Lead Detective")
	profiles := &fakeProfiles{listErr: errors.New("db down")}
	engine := newTestEngine(profiles, &fakeCalls{calls: []CastingCall{call}}, newFakeRecorder(), &recordingBus{})

	if _, err := engine.CallFanout(context.Background(), call.ID); err == nil {
		t.Fatal("expected enumeration failure to abort the fanout")
	}
}

func TestPairFailureDoesNotAbortFanout(t *testing.T) {
	broken := matchingProfile("broken")
	fine := matchingProfile("fine")
	call := openCall("Lead Detective")

	recorder := newFakeRecorder()
	recorder.failFor = map[uuid.UUID]error{broken.ID: errors.New("insert failed")}
	bus := &recordingBus{}
	engine := newTestEngine(&fakeProfiles{profiles: []Profile{broken, fine}}, &fakeCalls{calls: []CastingCall{call}}, recorder, bus)

	result, err := engine.CallFanout(context.Background(), call.ID)
	if err != nil {
		t.Fatalf("CallFanout returned error: %v", err)
	}

	if result.Failed != 1 || result.Submitted != 1 {
		t.Fatalf("expected one failed and one submitted pair, got %+v", result)
	}
	if len(bus.published()) != 1 {
		t.Fatalf("expected exactly one event for the surviving pair")
	}
}

func TestDuplicatePairSkippedSilently(t *testing.T) {
	profile := matchingProfile("maya")
	call := openCall("Lead Detective")

	recorder := newFakeRecorder()
	recorder.rows[pairKey{profile.ID, call.ID}] = uuid.New()

	bus := &recordingBus{}
	engine := newTestEngine(&fakeProfiles{profiles: []Profile{profile}}, &fakeCalls{calls: []CastingCall{call}}, recorder, bus)

	result, err := engine.CallFanout(context.Background(), call.ID)
	if err != nil {
		t.Fatalf("CallFanout returned error: %v", err)
	}

	if result.AlreadySubmitted != 1 || result.Submitted != 0 {
		t.Fatalf("expected duplicate to be counted, got %+v", result)
	}
	if len(bus.published()) != 0 {
		t.Fatalf("duplicate must not publish a second event")
	}
}

func TestConcurrentFanoutsRecordPairOnce(t *testing.T) {
	profile := matchingProfile("maya")
	call := openCall("Lead Detective")

	recorder := newFakeRecorder()
	bus := &recordingBus{}
	engine := newTestEngine(&fakeProfiles{profiles: []Profile{profile}}, &fakeCalls{calls: []CastingCall{call}}, recorder, bus)

	// Both fanouts cover the same (profile, call) pair at the same time.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := engine.CallFanout(context.Background(), call.ID); err != nil {
				t.Errorf("CallFanout: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := engine.ProfileFanout(context.Background(), profile.ID); err != nil {
				t.Errorf("ProfileFanout: %v", err)
			}
		}()
	}
	wg.Wait()

	if recorder.count() != 1 {
		t.Fatalf("expected exactly one submission for the pair, got %d", recorder.count())
	}
	if len(bus.published()) != 1 {
		t.Fatalf("expected exactly one notification event, got %d", len(bus.published()))
	}
}

func TestProfileFanoutReportsCounts(t *testing.T) {
	profile := matchingProfile("maya")

	open1 := openCall("Call A")
	open2 := openCall("Call B")
	open2.Ethnicity = Ethnicity("BLACK") // mismatch, 80 < threshold

	recorder := newFakeRecorder()
	bus := &recordingBus{}
	engine := newTestEngine(&fakeProfiles{profiles: []Profile{profile}}, &fakeCalls{calls: []CastingCall{open1, open2}}, recorder, bus)

	result, err := engine.ProfileFanout(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("ProfileFanout returned error: %v", err)
	}

	if result.Evaluated != 2 || result.Submitted != 1 || result.BelowThreshold != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
