// Package service implements submission use cases: manual submission through
// the same unique recorder the auto-engine uses, listings, and review updates.
package service

import (
	"context"

	"github.com/google/uuid"

	"castmatch_backend/internal/events"
	"castmatch_backend/internal/matching"
	"castmatch_backend/internal/submissions/repository"
	"castmatch_backend/internal/submissions/transport"
	"castmatch_backend/platform/apperr"
	"castmatch_backend/platform/logger"
)

// ProfileDirectory resolves the caller's profile for manual submissions.
type ProfileDirectory interface {
	GetCompletedByAccount(ctx context.Context, accountID uuid.UUID) (matching.Profile, error)
}

// Repository is the persistence surface the service needs.
type Repository interface {
	Record(ctx context.Context, params repository.RecordParams) (matching.RecordedSubmission, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Submission, error)
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]repository.SubmissionDetail, error)
	ListForCall(ctx context.Context, callID uuid.UUID) ([]repository.SubmissionDetail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status repository.Status) (repository.Submission, error)
}

// Service coordinates submission operations.
type Service struct {
	repo     Repository
	profiles ProfileDirectory
	calls    matching.CallSource
	bus      events.Bus
	log      *logger.Logger
}

// New creates a submissions service.
func New(repo Repository, profiles ProfileDirectory, calls matching.CallSource, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, profiles: profiles, calls: calls, bus: bus, log: log}
}

// CreateManual records a manual submission for the caller's profile. The
// score is computed for record-keeping only: manual submissions bypass the
// auto-submit threshold but never the uniqueness constraint. Unlike the
// engine's silent duplicate handling, a duplicate here is surfaced as a
// conflict so the actor knows the pair already exists.
func (s *Service) CreateManual(ctx context.Context, accountID uuid.UUID, req transport.CreateSubmissionRequest) (transport.SubmissionResponse, error) {
	profile, err := s.profiles.GetCompletedByAccount(ctx, accountID)
	if err != nil {
		return transport.SubmissionResponse{}, err
	}

	callID, err := uuid.Parse(req.CastingCallID)
	if err != nil {
		return transport.SubmissionResponse{}, apperr.Validation("invalid castingCallId")
	}

	call, err := s.calls.GetOpen(ctx, callID)
	if err != nil {
		return transport.SubmissionResponse{}, err
	}

	score := matching.Score(profile, call)

	recorded, created, err := s.repo.Record(ctx, repository.RecordParams{
		ProfileID:     profile.ID,
		CastingCallID: call.ID,
		Method:        matching.MethodManual,
		Score:         score,
	})
	if err != nil {
		return transport.SubmissionResponse{}, err
	}
	if !created {
		return transport.SubmissionResponse{}, apperr.Conflict("already submitted to this casting call")
	}

	s.bus.Publish(ctx, matching.SubmissionRecordedEvent(recorded, profile, call, matching.MethodManual, score))

	return transport.SubmissionResponse{
		ID:             recorded.ID,
		CastingCallID:  call.ID,
		CallTitle:      call.Title,
		Method:         string(matching.MethodManual),
		Status:         string(repository.StatusSent),
		MatchScore:     score,
		WouldAutoMatch: matching.ShouldAutoSubmit(score),
		CreatedAt:      recorded.CreatedAt,
	}, nil
}

// ListOwn returns the caller's submissions.
func (s *Service) ListOwn(ctx context.Context, accountID uuid.UUID) ([]repository.SubmissionDetail, error) {
	profile, err := s.profiles.GetCompletedByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForProfile(ctx, profile.ID)
}

// ListForCall returns a casting call's submissions for review.
func (s *Service) ListForCall(ctx context.Context, callID uuid.UUID) ([]repository.SubmissionDetail, error) {
	return s.repo.ListForCall(ctx, callID)
}

// UpdateStatus moves a submission through downstream review.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status repository.Status) (repository.Submission, error) {
	if !repository.ValidStatus(status) {
		return repository.Submission{}, apperr.Validation("invalid status")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
