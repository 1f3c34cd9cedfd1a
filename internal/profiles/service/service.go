// Package service implements profile use cases: onboarding upserts that
// trigger matching, the synchronous recheck, and live match previews.
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"castmatch_backend/internal/events"
	"castmatch_backend/internal/matching"
	"castmatch_backend/internal/profiles/repository"
	"castmatch_backend/internal/profiles/transport"
	"castmatch_backend/platform/apperr"
	"castmatch_backend/platform/logger"
	"castmatch_backend/platform/phone"
)

// SubmissionLookup annotates match previews with existing submissions.
type SubmissionLookup interface {
	SubmittedCallIDs(ctx context.Context, profileID uuid.UUID) (map[uuid.UUID]bool, error)
}

// Service coordinates profile operations.
type Service struct {
	repo        *repository.Repo
	calls       matching.CallSource
	submissions SubmissionLookup
	engine      *matching.Engine
	bus         events.Bus
	log         *logger.Logger
}

// New creates a profiles service.
func New(repo *repository.Repo, calls matching.CallSource, submissions SubmissionLookup, engine *matching.Engine, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		calls:       calls,
		submissions: submissions,
		engine:      engine,
		bus:         bus,
		log:         log,
	}
}

// Upsert saves the caller's full profile and completes onboarding. The
// profile-changed event is published after the write; matching runs in the
// background, so the request returns without waiting on any fanout.
func (s *Service) Upsert(ctx context.Context, accountID uuid.UUID, req transport.UpsertProfileRequest) (transport.ProfileResponse, error) {
	if req.PlayableAgeMin != nil && req.PlayableAgeMax != nil && *req.PlayableAgeMin > *req.PlayableAgeMax {
		return transport.ProfileResponse{}, apperr.Validation("playableAgeMin must not exceed playableAgeMax")
	}

	normalizedPhone, err := phone.NormalizeE164(req.Phone)
	if err != nil {
		return transport.ProfileResponse{}, apperr.Validation("invalid phone number")
	}

	interests := make([]matching.RoleType, 0, len(req.RoleInterests))
	for _, interest := range req.RoleInterests {
		interests = append(interests, matching.RoleType(interest))
	}

	profile, err := s.repo.Upsert(ctx, repository.UpsertParams{
		AccountID:           accountID,
		Name:                req.Name,
		Email:               req.Email,
		Phone:               normalizedPhone,
		Age:                 req.Age,
		PlayableAgeMin:      req.PlayableAgeMin,
		PlayableAgeMax:      req.PlayableAgeMax,
		Gender:              matching.Gender(req.Gender),
		City:                req.City,
		Region:              req.Region,
		UnionStatus:         matching.UnionStatus(req.UnionStatus),
		Ethnicity:           matching.Ethnicity(req.Ethnicity),
		RoleInterests:       interests,
		HeadshotURL:         req.HeadshotURL,
		ResumeURL:           req.ResumeURL,
		OnboardingCompleted: true,
	})
	if err != nil {
		return transport.ProfileResponse{}, err
	}

	s.bus.Publish(ctx, events.ProfileChanged{
		BaseEvent: events.NewBaseEvent(),
		ProfileID: profile.ID,
		AccountID: accountID,
		Source:    "upsert",
	})

	return transport.FromProfile(profile), nil
}

// Get returns the caller's profile.
func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (transport.ProfileResponse, error) {
	profile, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return transport.FromProfile(profile), nil
}

// Recheck runs the profile fanout synchronously so the actor sees how many
// new submissions the pass produced. Unlike the event-driven triggers this
// one intentionally blocks the request.
func (s *Service) Recheck(ctx context.Context, accountID uuid.UUID) (transport.RecheckResponse, error) {
	profile, err := s.repo.GetCompletedByAccount(ctx, accountID)
	if err != nil {
		return transport.RecheckResponse{}, err
	}

	result, err := s.engine.ProfileFanout(ctx, profile.ID)
	if err != nil {
		return transport.RecheckResponse{}, err
	}

	return transport.RecheckResponse{
		Evaluated:        result.Evaluated,
		NewSubmissions:   result.Submitted,
		AlreadySubmitted: result.AlreadySubmitted,
		BelowThreshold:   result.BelowThreshold,
		Failed:           result.Failed,
	}, nil
}

// Matches scores every open casting call against the caller's profile,
// best first, with submitted pairs flagged. It uses the same scorer as the
// engine, so the preview never disagrees with auto-submission behavior.
func (s *Service) Matches(ctx context.Context, accountID uuid.UUID) ([]transport.MatchPreview, error) {
	profile, err := s.repo.GetCompletedByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	calls, err := s.calls.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	submitted, err := s.submissions.SubmittedCallIDs(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	previews := make([]transport.MatchPreview, 0, len(calls))
	for _, call := range calls {
		breakdown := matching.ScoreBreakdown(profile, call)
		previews = append(previews, transport.MatchPreview{
			CastingCallID:  call.ID,
			Title:          call.Title,
			RoleType:       string(call.RoleType),
			Location:       call.Location,
			Deadline:       call.Deadline,
			Score:          breakdown.Total,
			Breakdown:      breakdown,
			WouldAutoMatch: matching.ShouldAutoSubmit(breakdown.Total),
			Submitted:      submitted[call.ID],
		})
	}

	sort.SliceStable(previews, func(i, j int) bool {
		return previews[i].Score > previews[j].Score
	})
	return previews, nil
}
