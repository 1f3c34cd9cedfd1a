// Package transport defines request and response DTOs for casting call endpoints.
package transport

import (
	"time"

	"github.com/google/uuid"

	"castmatch_backend/internal/matching"
)

// CreateCastingCallRequest carries a new casting call. Wildcard requirements
// are sent explicitly (gender ANY, union EITHER, ethnicity ANY).
type CreateCastingCallRequest struct {
	Title               string    `json:"title" validate:"required,max=200"`
	Description         string    `json:"description" validate:"max=5000"`
	CastingContactName  string    `json:"castingContactName" validate:"required,max=200"`
	CastingContactEmail string    `json:"castingContactEmail" validate:"required,email"`
	AgeMin              int       `json:"ageMin" validate:"gte=0,lte=120"`
	AgeMax              int       `json:"ageMax" validate:"gte=0,lte=120,gtefield=AgeMin"`
	Gender              string    `json:"gender" validate:"required,oneof=ANY FEMALE MALE NON_BINARY"`
	UnionStatus         string    `json:"unionStatus" validate:"required,oneof=EITHER UNION NON_UNION"`
	Ethnicity           string    `json:"ethnicity" validate:"required,max=120"`
	Location            string    `json:"location" validate:"max=200"`
	RoleType            string    `json:"roleType" validate:"required,oneof=FILM TELEVISION COMMERCIAL THEATER VOICEOVER PRINT"`
	Deadline            time.Time `json:"deadline" validate:"required"`
}

// CastingCallResponse is the API representation of a casting call.
type CastingCallResponse struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	CastingContactName  string    `json:"castingContactName"`
	CastingContactEmail string    `json:"castingContactEmail"`
	AgeMin              int       `json:"ageMin"`
	AgeMax              int       `json:"ageMax"`
	Gender              string    `json:"gender"`
	UnionStatus         string    `json:"unionStatus"`
	Ethnicity           string    `json:"ethnicity"`
	Location            string    `json:"location,omitempty"`
	RoleType            string    `json:"roleType"`
	Deadline            time.Time `json:"deadline"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}

// FromCall maps the domain casting call to its API shape.
func FromCall(c matching.CastingCall) CastingCallResponse {
	return CastingCallResponse{
		ID:                  c.ID,
		Title:               c.Title,
		Description:         c.Description,
		CastingContactName:  c.CastingContactName,
		CastingContactEmail: c.CastingContactEmail,
		AgeMin:              c.AgeMin,
		AgeMax:              c.AgeMax,
		Gender:              string(c.Gender),
		UnionStatus:         string(c.UnionStatus),
		Ethnicity:           string(c.Ethnicity),
		Location:            c.Location,
		RoleType:            string(c.RoleType),
		Deadline:            c.Deadline,
		Status:              string(c.Status),
		CreatedAt:           c.CreatedAt,
	}
}

// FromCalls maps a slice of domain casting calls.
func FromCalls(calls []matching.CastingCall) []CastingCallResponse {
	responses := make([]CastingCallResponse, 0, len(calls))
	for _, call := range calls {
		responses = append(responses, FromCall(call))
	}
	return responses
}

// ProfileMatch is one completed profile scored against a casting call for
// the admin preview.
type ProfileMatch struct {
	ProfileID      uuid.UUID          `json:"profileId"`
	Name           string             `json:"name"`
	City           string             `json:"city"`
	Region         string             `json:"region,omitempty"`
	Score          int                `json:"score"`
	Breakdown      matching.Breakdown `json:"breakdown"`
	WouldAutoMatch bool               `json:"wouldAutoMatch"`
}
