// Package service implements casting call use cases: admin CRUD with the
// published-call trigger, open-call listings, and the admin match preview.
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"castmatch_backend/internal/castings/repository"
	"castmatch_backend/internal/castings/transport"
	"castmatch_backend/internal/events"
	"castmatch_backend/internal/matching"
	"castmatch_backend/platform/apperr"
	"castmatch_backend/platform/logger"
)

// Service coordinates casting call operations.
type Service struct {
	repo     *repository.Repo
	profiles matching.ProfileSource
	bus      events.Bus
	log      *logger.Logger
}

// New creates a castings service.
func New(repo *repository.Repo, profiles matching.ProfileSource, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, profiles: profiles, bus: bus, log: log}
}

// Create publishes a new casting call. The published event fans the call out
// to every completed profile in the background; the request returns as soon
// as the row exists.
func (s *Service) Create(ctx context.Context, req transport.CreateCastingCallRequest) (transport.CastingCallResponse, error) {
	call, err := s.repo.Create(ctx, repository.CreateParams{
		Title:               req.Title,
		Description:         req.Description,
		CastingContactName:  req.CastingContactName,
		CastingContactEmail: req.CastingContactEmail,
		AgeMin:              req.AgeMin,
		AgeMax:              req.AgeMax,
		Gender:              matching.Gender(req.Gender),
		UnionStatus:         matching.UnionStatus(req.UnionStatus),
		Ethnicity:           matching.Ethnicity(req.Ethnicity),
		Location:            req.Location,
		RoleType:            matching.RoleType(req.RoleType),
		Deadline:            req.Deadline,
	})
	if err != nil {
		return transport.CastingCallResponse{}, err
	}

	s.bus.Publish(ctx, events.CastingCallPublished{
		BaseEvent: events.NewBaseEvent(),
		CallID:    call.ID,
		Title:     call.Title,
	})

	return transport.FromCall(call), nil
}

// Get returns one casting call.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.CastingCallResponse, error) {
	call, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.CastingCallResponse{}, err
	}
	return transport.FromCall(call), nil
}

// ListOpen returns the calls actors can still be submitted to.
func (s *Service) ListOpen(ctx context.Context) ([]transport.CastingCallResponse, error) {
	calls, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	return transport.FromCalls(calls), nil
}

// ListAll returns every casting call for administration.
func (s *Service) ListAll(ctx context.Context) ([]transport.CastingCallResponse, error) {
	calls, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return transport.FromCalls(calls), nil
}

// Close marks a casting call closed. Closed calls stop matching immediately;
// existing submissions are untouched.
func (s *Service) Close(ctx context.Context, id uuid.UUID) (transport.CastingCallResponse, error) {
	call, err := s.repo.Close(ctx, id)
	if err != nil {
		return transport.CastingCallResponse{}, err
	}
	return transport.FromCall(call), nil
}

// MatchPreview scores every completed profile against the call, best first.
// It is a read-only preview with the same scorer the engine uses; it records
// nothing.
func (s *Service) MatchPreview(ctx context.Context, callID uuid.UUID) ([]transport.ProfileMatch, error) {
	call, err := s.repo.Get(ctx, callID)
	if err != nil {
		return nil, err
	}
	if call.Status == matching.CallStatusClosed {
		return nil, apperr.Gone("casting call is closed")
	}

	profiles, err := s.profiles.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]transport.ProfileMatch, 0, len(profiles))
	for _, profile := range profiles {
		breakdown := matching.ScoreBreakdown(profile, call)
		matches = append(matches, transport.ProfileMatch{
			ProfileID:      profile.ID,
			Name:           profile.Name,
			City:           profile.City,
			Region:         profile.Region,
			Score:          breakdown.Total,
			Breakdown:      breakdown,
			WouldAutoMatch: matching.ShouldAutoSubmit(breakdown.Total),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}
