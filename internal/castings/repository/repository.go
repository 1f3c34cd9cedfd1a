// Package repository provides PostgreSQL persistence for casting calls.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"castmatch_backend/internal/matching"
	"castmatch_backend/platform/apperr"
)

const callColumns = `
	id, title, description, casting_contact_name, casting_contact_email,
	age_min, age_max, gender, union_status, ethnicity, location, role_type,
	deadline, status, created_at`

// Repo implements casting call persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New creates a new casting calls repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, now: time.Now}
}

// Compile-time check that Repo satisfies the engine's call port.
var _ matching.CallSource = (*Repo)(nil)

// CreateParams carries a new casting call.
type CreateParams struct {
	Title               string
	Description         string
	CastingContactName  string
	CastingContactEmail string
	AgeMin              int
	AgeMax              int
	Gender              matching.Gender
	UnionStatus         matching.UnionStatus
	Ethnicity           matching.Ethnicity
	Location            string
	RoleType            matching.RoleType
	Deadline            time.Time
}

// Create inserts a new active casting call.
func (r *Repo) Create(ctx context.Context, params CreateParams) (matching.CastingCall, error) {
	query := `
		INSERT INTO casting_calls (
			title, description, casting_contact_name, casting_contact_email,
			age_min, age_max, gender, union_status, ethnicity, location, role_type,
			deadline, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'active')
		RETURNING` + callColumns

	row := r.pool.QueryRow(ctx, query,
		params.Title, params.Description, params.CastingContactName, params.CastingContactEmail,
		params.AgeMin, params.AgeMax, string(params.Gender), string(params.UnionStatus),
		string(params.Ethnicity), params.Location, string(params.RoleType), params.Deadline,
	)

	call, err := scanCall(row)
	if err != nil {
		return matching.CastingCall{}, fmt.Errorf("create casting call: %w", err)
	}
	return call, nil
}

// Get returns a casting call regardless of its state.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (matching.CastingCall, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+callColumns+` FROM casting_calls WHERE id = $1`, id)

	call, err := scanCall(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return matching.CastingCall{}, apperr.NotFound("casting call not found")
		}
		return matching.CastingCall{}, fmt.Errorf("get casting call: %w", err)
	}
	return call, nil
}

// GetOpen returns the call when it still accepts submissions. A call that
// exists but is closed or past its deadline is Gone, so fanout workers can
// complete benignly instead of retrying.
func (r *Repo) GetOpen(ctx context.Context, id uuid.UUID) (matching.CastingCall, error) {
	call, err := r.Get(ctx, id)
	if err != nil {
		return matching.CastingCall{}, err
	}
	if !call.OpenAt(r.now()) {
		return matching.CastingCall{}, apperr.Gone("casting call is no longer open")
	}
	return call, nil
}

// ListOpen returns every active call whose deadline is in the future.
// Deadline filtering happens here, at enumeration time, so a profile fanout
// never evaluates an expired call.
func (r *Repo) ListOpen(ctx context.Context) ([]matching.CastingCall, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+callColumns+` FROM casting_calls
		 WHERE status = 'active' AND deadline > now()
		 ORDER BY deadline`)
	if err != nil {
		return nil, fmt.Errorf("list open casting calls: %w", err)
	}
	defer rows.Close()

	return scanCalls(rows)
}

// ListAll returns every casting call for administration, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]matching.CastingCall, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+callColumns+` FROM casting_calls ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list casting calls: %w", err)
	}
	defer rows.Close()

	return scanCalls(rows)
}

// Close marks a casting call closed. Closing is idempotent.
func (r *Repo) Close(ctx context.Context, id uuid.UUID) (matching.CastingCall, error) {
	query := `
		UPDATE casting_calls
		SET status = 'closed'
		WHERE id = $1
		RETURNING` + callColumns

	row := r.pool.QueryRow(ctx, query, id)
	call, err := scanCall(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return matching.CastingCall{}, apperr.NotFound("casting call not found")
		}
		return matching.CastingCall{}, fmt.Errorf("close casting call: %w", err)
	}
	return call, nil
}

func scanCalls(rows pgx.Rows) ([]matching.CastingCall, error) {
	calls := make([]matching.CastingCall, 0)
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("scan casting call: %w", err)
		}
		calls = append(calls, call)
	}
	return calls, rows.Err()
}

func scanCall(row pgx.Row) (matching.CastingCall, error) {
	var (
		c           matching.CastingCall
		gender      string
		unionStatus string
		ethnicity   string
		roleType    string
		status      string
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.CastingContactName, &c.CastingContactEmail,
		&c.AgeMin, &c.AgeMax, &gender, &unionStatus, &ethnicity, &c.Location, &roleType,
		&c.Deadline, &status, &c.CreatedAt,
	)
	if err != nil {
		return matching.CastingCall{}, err
	}

	c.Gender = matching.Gender(gender)
	c.UnionStatus = matching.UnionStatus(unionStatus)
	c.Ethnicity = matching.Ethnicity(ethnicity)
	c.RoleType = matching.RoleType(roleType)
	c.Status = matching.CallStatus(status)
	return c, nil
}
