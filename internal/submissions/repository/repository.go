// Package repository provides PostgreSQL persistence for submissions,
// including the unique-constrained insert the matching engine relies on.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"castmatch_backend/internal/matching"
	"castmatch_backend/platform/apperr"
)

const submissionNotFoundMessage = "submission not found"

// Submission is the durable record that a profile was presented to a casting
// call's contact. At most one exists per (profile, call) pair.
type Submission struct {
	ID            uuid.UUID       `json:"id"`
	ProfileID     uuid.UUID       `json:"profileId"`
	CastingCallID uuid.UUID       `json:"castingCallId"`
	Method        matching.Method `json:"method"`
	Status        Status          `json:"status"`
	MatchScore    int             `json:"matchScore"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Status reflects downstream review of a submission. Only "sent" is written
// by this engine; the rest are owned by the review flow.
type Status string

const (
	StatusSent        Status = "sent"
	StatusViewed      Status = "viewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
)

// ValidStatus reports whether a status value is known.
func ValidStatus(s Status) bool {
	switch s {
	case StatusSent, StatusViewed, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// SubmissionDetail joins a submission with display fields for listings.
type SubmissionDetail struct {
	Submission
	CallTitle    string    `json:"callTitle"`
	CallRoleType string    `json:"callRoleType"`
	CallDeadline time.Time `json:"callDeadline"`
	ProfileName  string    `json:"profileName"`
}

// Repo implements submission persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new submissions repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo satisfies the engine's recorder port.
var _ matching.SubmissionRecorder = (*Repo)(nil)

// Record attempts the unique insert for one (profile, call) pair. The
// ON CONFLICT DO NOTHING arm makes the duplicate case a benign non-error:
// created=false with no row returned. Every other failure is a hard error
// scoped to this pair.
func (r *Repo) Record(ctx context.Context, params RecordParams) (matching.RecordedSubmission, bool, error) {
	query := `
		INSERT INTO submissions (profile_id, casting_call_id, method, match_score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, casting_call_id) DO NOTHING
		RETURNING id, created_at`

	var recorded matching.RecordedSubmission
	err := r.pool.QueryRow(ctx, query,
		params.ProfileID, params.CastingCallID, string(params.Method), params.Score,
	).Scan(&recorded.ID, &recorded.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The pair already has a submission; skip silently.
			return matching.RecordedSubmission{}, false, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				// Unique violation surfaced directly (e.g. inside an explicit
				// transaction); same benign outcome as the conflict arm.
				return matching.RecordedSubmission{}, false, nil
			case "23503":
				return matching.RecordedSubmission{}, false, apperr.Validation("invalid profileId or castingCallId").WithOp("submissions.record")
			}
		}
		return matching.RecordedSubmission{}, false, fmt.Errorf("record submission: %w", err)
	}

	return recorded, true, nil
}

// RecordParams aliases the engine's params type so both the engine and the
// manual path share one recorder signature.
type RecordParams = matching.RecordSubmissionParams

// GetByID retrieves a single submission.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Submission, error) {
	query := `
		SELECT id, profile_id, casting_call_id, method, status, match_score, created_at
		FROM submissions
		WHERE id = $1`

	var s Submission
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ProfileID, &s.CastingCallID, &s.Method, &s.Status, &s.MatchScore, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Submission{}, apperr.NotFound(submissionNotFoundMessage)
		}
		return Submission{}, fmt.Errorf("get submission by id: %w", err)
	}

	return s, nil
}

// Exists reports whether the pair already has a submission. Used only to
// shortcut display queries; correctness never depends on it.
func (r *Repo) Exists(ctx context.Context, profileID, callID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM submissions WHERE profile_id = $1 AND casting_call_id = $2)`,
		profileID, callID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("submission exists: %w", err)
	}
	return exists, nil
}

// SubmittedCallIDs returns the casting call IDs the profile was already
// submitted to, for annotating match listings.
func (r *Repo) SubmittedCallIDs(ctx context.Context, profileID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT casting_call_id FROM submissions WHERE profile_id = $1`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list submitted call ids: %w", err)
	}
	defer rows.Close()

	submitted := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan submitted call id: %w", err)
		}
		submitted[id] = true
	}
	return submitted, rows.Err()
}

// ListForProfile returns the profile's submissions, newest first.
func (r *Repo) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]SubmissionDetail, error) {
	query := `
		SELECT s.id, s.profile_id, s.casting_call_id, s.method, s.status, s.match_score, s.created_at,
		       c.title, c.role_type, c.deadline, p.name
		FROM submissions s
		JOIN casting_calls c ON c.id = s.casting_call_id
		JOIN profiles p ON p.id = s.profile_id
		WHERE s.profile_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list submissions for profile: %w", err)
	}
	defer rows.Close()

	return scanDetails(rows)
}

// ListForCall returns a casting call's submissions, newest first.
func (r *Repo) ListForCall(ctx context.Context, callID uuid.UUID) ([]SubmissionDetail, error) {
	query := `
		SELECT s.id, s.profile_id, s.casting_call_id, s.method, s.status, s.match_score, s.created_at,
		       c.title, c.role_type, c.deadline, p.name
		FROM submissions s
		JOIN casting_calls c ON c.id = s.casting_call_id
		JOIN profiles p ON p.id = s.profile_id
		WHERE s.casting_call_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query, callID)
	if err != nil {
		return nil, fmt.Errorf("list submissions for call: %w", err)
	}
	defer rows.Close()

	return scanDetails(rows)
}

// UpdateStatus moves a submission through downstream review. The engine
// itself never calls this.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Submission, error) {
	query := `
		UPDATE submissions
		SET status = $2
		WHERE id = $1
		RETURNING id, profile_id, casting_call_id, method, status, match_score, created_at`

	var s Submission
	err := r.pool.QueryRow(ctx, query, id, string(status)).Scan(
		&s.ID, &s.ProfileID, &s.CastingCallID, &s.Method, &s.Status, &s.MatchScore, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Submission{}, apperr.NotFound(submissionNotFoundMessage)
		}
		return Submission{}, fmt.Errorf("update submission status: %w", err)
	}

	return s, nil
}

func scanDetails(rows pgx.Rows) ([]SubmissionDetail, error) {
	details := make([]SubmissionDetail, 0)
	for rows.Next() {
		var d SubmissionDetail
		if err := rows.Scan(
			&d.ID, &d.ProfileID, &d.CastingCallID, &d.Method, &d.Status, &d.MatchScore, &d.CreatedAt,
			&d.CallTitle, &d.CallRoleType, &d.CallDeadline, &d.ProfileName,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
