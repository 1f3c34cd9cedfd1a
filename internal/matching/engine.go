package matching

import (
	"context"
	"sync"
	"time"

	"castmatch_backend/internal/events"
	"castmatch_backend/platform/config"
	"castmatch_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultParallelism = 8

// Engine runs the two fanout orchestrators. It holds no state between runs:
// correctness under concurrent invocation comes entirely from the recorder's
// uniqueness constraint, not from anything the engine remembers.
type Engine struct {
	profiles    ProfileSource
	calls       CallSource
	recorder    SubmissionRecorder
	bus         events.Bus
	log         *logger.Logger
	parallelism int
	now         func() time.Time
}

// NewEngine creates a matching engine. cfg bounds how many candidate pairs
// one fanout evaluates concurrently.
func NewEngine(profiles ProfileSource, calls CallSource, recorder SubmissionRecorder, bus events.Bus, log *logger.Logger, cfg config.MatchingConfig) *Engine {
	parallelism := cfg.GetFanoutParallelism()
	if parallelism < 1 {
		parallelism = defaultParallelism
	}
	return &Engine{
		profiles:    profiles,
		calls:       calls,
		recorder:    recorder,
		bus:         bus,
		log:         log,
		parallelism: parallelism,
		now:         time.Now,
	}
}

// Result summarizes one fanout pass. AlreadySubmitted counts benign
// duplicate pairs; Failed counts pair-scoped errors that did not abort the
// rest of the pass.
type Result struct {
	Evaluated        int `json:"evaluated"`
	Submitted        int `json:"submitted"`
	AlreadySubmitted int `json:"alreadySubmitted"`
	BelowThreshold   int `json:"belowThreshold"`
	Failed           int `json:"failed"`
}

type pairOutcome int

const (
	outcomeSubmitted pairOutcome = iota
	outcomeDuplicate
	outcomeBelowThreshold
	outcomeFailed
)

// CallFanout evaluates one newly published casting call against every
// completed profile. Failing to load the call or enumerate profiles aborts
// the run; every per-pair failure is logged and isolated.
func (e *Engine) CallFanout(ctx context.Context, callID uuid.UUID) (Result, error) {
	call, err := e.calls.GetOpen(ctx, callID)
	if err != nil {
		return Result{}, err
	}

	profiles, err := e.profiles.ListCompleted(ctx)
	if err != nil {
		return Result{}, err
	}

	result := e.runPairs(ctx, len(profiles), func(i int) pairOutcome {
		return e.evaluatePair(ctx, profiles[i], call)
	})

	e.log.FanoutCompleted("call", result.Evaluated, result.Submitted, result.AlreadySubmitted, result.Failed)
	return result, nil
}

// ProfileFanout evaluates one changed profile against every open casting
// call. Calls whose deadline has passed are excluded at enumeration time.
func (e *Engine) ProfileFanout(ctx context.Context, profileID uuid.UUID) (Result, error) {
	profile, err := e.profiles.GetCompleted(ctx, profileID)
	if err != nil {
		return Result{}, err
	}

	calls, err := e.calls.ListOpen(ctx)
	if err != nil {
		return Result{}, err
	}

	result := e.runPairs(ctx, len(calls), func(i int) pairOutcome {
		return e.evaluatePair(ctx, profile, calls[i])
	})

	e.log.FanoutCompleted("profile", result.Evaluated, result.Submitted, result.AlreadySubmitted, result.Failed)
	return result, nil
}

// runPairs evaluates n candidate pairs with bounded concurrency. Outcomes are
// order-insensitive; the worker closures never return an error, so one bad
// pair cannot cancel the group.
func (e *Engine) runPairs(ctx context.Context, n int, evaluate func(i int) pairOutcome) Result {
	var (
		mu     sync.Mutex
		result Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome := evaluate(i)

			mu.Lock()
			defer mu.Unlock()
			result.Evaluated++
			switch outcome {
			case outcomeSubmitted:
				result.Submitted++
			case outcomeDuplicate:
				result.AlreadySubmitted++
			case outcomeBelowThreshold:
				result.BelowThreshold++
			case outcomeFailed:
				result.Failed++
			}
			return nil
		})
	}

	_ = g.Wait()
	return result
}

// evaluatePair runs the strict per-pair order: score, decide, attempt the
// unique record, and only then publish for notification.
func (e *Engine) evaluatePair(ctx context.Context, profile Profile, call CastingCall) pairOutcome {
	score := Score(profile, call)
	if !ShouldAutoSubmit(score) {
		return outcomeBelowThreshold
	}

	recorded, created, err := e.recorder.Record(ctx, RecordSubmissionParams{
		ProfileID:     profile.ID,
		CastingCallID: call.ID,
		Method:        MethodAuto,
		Score:         score,
	})
	if err != nil {
		e.log.Error("auto-submission record failed",
			"profileId", profile.ID,
			"callId", call.ID,
			"score", score,
			"error", err,
		)
		return outcomeFailed
	}
	if !created {
		// Pair was already submitted (auto, manual, or a racing fanout).
		return outcomeDuplicate
	}

	e.bus.Publish(ctx, SubmissionRecordedEvent(recorded, profile, call, MethodAuto, score))
	return outcomeSubmitted
}

// SubmissionRecordedEvent builds the notification payload for a newly
// recorded submission. The manual submission path uses the same constructor
// so auto and manual submissions notify identically.
func SubmissionRecordedEvent(recorded RecordedSubmission, profile Profile, call CastingCall, method Method, score int) events.SubmissionRecorded {
	return events.SubmissionRecorded{
		BaseEvent:     events.NewBaseEvent(),
		SubmissionID:  recorded.ID,
		ProfileID:     profile.ID,
		CastingCallID: call.ID,
		Method:        string(method),
		Score:         score,

		ProfileName:   profile.Name,
		ProfileEmail:  profile.Email,
		ProfilePhone:  profile.Phone,
		ProfileCity:   profile.City,
		ProfileRegion: profile.Region,
		ProfileAge:    profile.Age,
		ProfileUnion:  string(profile.UnionStatus),
		HeadshotURL:   profile.HeadshotURL,
		ResumeURL:     profile.ResumeURL,

		CallTitle:           call.Title,
		CallRoleType:        string(call.RoleType),
		CallLocation:        call.Location,
		CastingContactName:  call.CastingContactName,
		CastingContactEmail: call.CastingContactEmail,
	}
}
