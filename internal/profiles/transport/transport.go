// Package transport defines request and response DTOs for profile endpoints.
package transport

import (
	"time"

	"github.com/google/uuid"

	"castmatch_backend/internal/matching"
)

// UpsertProfileRequest carries the full profile; saving it completes
// onboarding and makes the profile matchable.
type UpsertProfileRequest struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"required"`
	Age            *int     `json:"age" validate:"omitempty,gte=0,lte=120"`
	PlayableAgeMin *int     `json:"playableAgeMin" validate:"omitempty,gte=0,lte=120"`
	PlayableAgeMax *int     `json:"playableAgeMax" validate:"omitempty,gte=0,lte=120"`
	Gender         string   `json:"gender" validate:"required,oneof=FEMALE MALE NON_BINARY"`
	City           string   `json:"city" validate:"required,max=120"`
	Region         string   `json:"region" validate:"max=120"`
	UnionStatus    string   `json:"unionStatus" validate:"required,oneof=UNION NON_UNION"`
	Ethnicity      string   `json:"ethnicity" validate:"required,max=120"`
	RoleInterests  []string `json:"roleInterests" validate:"dive,oneof=FILM TELEVISION COMMERCIAL THEATER VOICEOVER PRINT"`
	HeadshotURL    string   `json:"headshotUrl" validate:"omitempty,url"`
	ResumeURL      string   `json:"resumeUrl" validate:"omitempty,url"`
}

// ProfileResponse is the API representation of a profile.
type ProfileResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Age                 *int      `json:"age,omitempty"`
	PlayableAgeMin      *int      `json:"playableAgeMin,omitempty"`
	PlayableAgeMax      *int      `json:"playableAgeMax,omitempty"`
	Gender              string    `json:"gender"`
	City                string    `json:"city"`
	Region              string    `json:"region,omitempty"`
	UnionStatus         string    `json:"unionStatus"`
	Ethnicity           string    `json:"ethnicity"`
	RoleInterests       []string  `json:"roleInterests"`
	HeadshotURL         string    `json:"headshotUrl,omitempty"`
	ResumeURL           string    `json:"resumeUrl,omitempty"`
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromProfile maps the domain profile to its API shape.
func FromProfile(p matching.Profile) ProfileResponse {
	interests := make([]string, 0, len(p.RoleInterests))
	for _, interest := range p.RoleInterests {
		interests = append(interests, string(interest))
	}
	return ProfileResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Email:               p.Email,
		Phone:               p.Phone,
		Age:                 p.Age,
		PlayableAgeMin:      p.PlayableAgeMin,
		PlayableAgeMax:      p.PlayableAgeMax,
		Gender:              string(p.Gender),
		City:                p.City,
		Region:              p.Region,
		UnionStatus:         string(p.UnionStatus),
		Ethnicity:           string(p.Ethnicity),
		RoleInterests:       interests,
		HeadshotURL:         p.HeadshotURL,
		ResumeURL:           p.ResumeURL,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// MatchPreview is one open casting call scored live against the caller's
// profile. The score shown is the score the engine acts on.
type MatchPreview struct {
	CastingCallID  uuid.UUID          `json:"castingCallId"`
	Title          string             `json:"title"`
	RoleType       string             `json:"roleType"`
	Location       string             `json:"location,omitempty"`
	Deadline       time.Time          `json:"deadline"`
	Score          int                `json:"score"`
	Breakdown      matching.Breakdown `json:"breakdown"`
	WouldAutoMatch bool               `json:"wouldAutoMatch"`
	Submitted      bool               `json:"submitted"`
}

// RecheckResponse reports the outcome of a synchronous profile recheck.
type RecheckResponse struct {
	Evaluated        int `json:"evaluated"`
	NewSubmissions   int `json:"newSubmissions"`
	AlreadySubmitted int `json:"alreadySubmitted"`
	BelowThreshold   int `json:"belowThreshold"`
	Failed           int `json:"failed"`
}
