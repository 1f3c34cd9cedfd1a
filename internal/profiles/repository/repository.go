// Package repository provides PostgreSQL persistence for actor profiles.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"castmatch_backend/internal/matching"
	"castmatch_backend/platform/apperr"
)

const profileColumns = `
	id, account_id, name, email, phone, age, playable_age_min, playable_age_max,
	gender, city, region, union_status, ethnicity, role_interests,
	headshot_url, resume_url, onboarding_completed, created_at, updated_at`

// Repo implements profile persistence with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profiles repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo satisfies the engine's profile port.
var _ matching.ProfileSource = (*Repo)(nil)

// UpsertParams carries a full profile write. Writes are whole-profile:
// the onboarding flow always sends every field it has.
type UpsertParams struct {
	AccountID           uuid.UUID
	Name                string
	Email               string
	Phone               string
	Age                 *int
	PlayableAgeMin      *int
	PlayableAgeMax      *int
	Gender              matching.Gender
	City                string
	Region              string
	UnionStatus         matching.UnionStatus
	Ethnicity           matching.Ethnicity
	RoleInterests       []matching.RoleType
	HeadshotURL         string
	ResumeURL           string
	OnboardingCompleted bool
}

// Upsert creates or replaces the account's profile. Each account owns at
// most one profile, enforced by the unique index on account_id.
func (r *Repo) Upsert(ctx context.Context, params UpsertParams) (matching.Profile, error) {
	query := `
		INSERT INTO profiles (
			account_id, name, email, phone, age, playable_age_min, playable_age_max,
			gender, city, region, union_status, ethnicity, role_interests,
			headshot_url, resume_url, onboarding_completed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (account_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			age = EXCLUDED.age,
			playable_age_min = EXCLUDED.playable_age_min,
			playable_age_max = EXCLUDED.playable_age_max,
			gender = EXCLUDED.gender,
			city = EXCLUDED.city,
			region = EXCLUDED.region,
			union_status = EXCLUDED.union_status,
			ethnicity = EXCLUDED.ethnicity,
			role_interests = EXCLUDED.role_interests,
			headshot_url = EXCLUDED.headshot_url,
			resume_url = EXCLUDED.resume_url,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = now()
		RETURNING` + profileColumns

	row := r.pool.QueryRow(ctx, query,
		params.AccountID, params.Name, params.Email, params.Phone,
		params.Age, params.PlayableAgeMin, params.PlayableAgeMax,
		string(params.Gender), params.City, params.Region,
		string(params.UnionStatus), string(params.Ethnicity), roleInterestsToText(params.RoleInterests),
		params.HeadshotURL, params.ResumeURL, params.OnboardingCompleted,
	)

	profile, err := scanProfile(row)
	if err != nil {
		return matching.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

// GetByAccount returns the account's profile regardless of onboarding state.
func (r *Repo) GetByAccount(ctx context.Context, accountID uuid.UUID) (matching.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+profileColumns+` FROM profiles WHERE account_id = $1`, accountID)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return matching.Profile{}, apperr.NotFound("profile not found")
		}
		return matching.Profile{}, fmt.Errorf("get profile by account: %w", err)
	}
	return profile, nil
}

// GetCompletedByAccount returns the account's profile when onboarding is
// complete. Incomplete profiles never enter matching or submission flows.
func (r *Repo) GetCompletedByAccount(ctx context.Context, accountID uuid.UUID) (matching.Profile, error) {
	profile, err := r.GetByAccount(ctx, accountID)
	if err != nil {
		return matching.Profile{}, err
	}
	if !profile.OnboardingCompleted {
		return matching.Profile{}, apperr.Validation("profile onboarding is not complete")
	}
	return profile, nil
}

// GetCompleted returns the profile when its onboarding is complete.
func (r *Repo) GetCompleted(ctx context.Context, id uuid.UUID) (matching.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+profileColumns+` FROM profiles WHERE id = $1`, id)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return matching.Profile{}, apperr.NotFound("profile not found")
		}
		return matching.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !profile.OnboardingCompleted {
		return matching.Profile{}, apperr.Validation("profile onboarding is not complete")
	}
	return profile, nil
}

// ListCompleted returns every profile with completed onboarding.
func (r *Repo) ListCompleted(ctx context.Context) ([]matching.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+profileColumns+` FROM profiles WHERE onboarding_completed ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list completed profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]matching.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (matching.Profile, error) {
	var (
		p             matching.Profile
		gender        string
		unionStatus   string
		ethnicity     string
		roleInterests []string
	)
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Email, &p.Phone,
		&p.Age, &p.PlayableAgeMin, &p.PlayableAgeMax,
		&gender, &p.City, &p.Region, &unionStatus, &ethnicity, &roleInterests,
		&p.HeadshotURL, &p.ResumeURL, &p.OnboardingCompleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return matching.Profile{}, err
	}

	p.Gender = matching.Gender(gender)
	p.UnionStatus = matching.UnionStatus(unionStatus)
	p.Ethnicity = matching.Ethnicity(ethnicity)
	p.RoleInterests = make([]matching.RoleType, 0, len(roleInterests))
	for _, interest := range roleInterests {
		p.RoleInterests = append(p.RoleInterests, matching.RoleType(interest))
	}
	return p, nil
}

func roleInterestsToText(interests []matching.RoleType) []string {
	values := make([]string, 0, len(interests))
	for _, interest := range interests {
		values = append(values, string(interest))
	}
	return values
}
