// Package matching implements the profile-to-casting-call matching engine:
// the compatibility scorer, the auto-submission policy, and the fanout
// orchestrators that evaluate candidate pairs when a call or a profile changes.
package matching

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender is an actor gender or a casting gender requirement.
// GenderAny is the explicit wildcard used by casting calls.
type Gender string

const (
	GenderAny       Gender = "ANY"
	GenderFemale    Gender = "FEMALE"
	GenderMale      Gender = "MALE"
	GenderNonBinary Gender = "NON_BINARY"
)

// IsWildcard reports whether the requirement accepts any gender.
func (g Gender) IsWildcard() bool { return g == GenderAny }

// Matches reports whether the requirement accepts the given profile value.
func (g Gender) Matches(other Gender) bool {
	if g.IsWildcard() {
		return true
	}
	return other != "" && strings.EqualFold(string(g), string(other))
}

// UnionStatus is an actor's union affiliation or a casting union requirement.
// UnionEither is the explicit wildcard used by casting calls.
type UnionStatus string

const (
	UnionEither   UnionStatus = "EITHER"
	UnionMember   UnionStatus = "UNION"
	UnionNonUnion UnionStatus = "NON_UNION"
)

// IsWildcard reports whether the requirement accepts any union status.
func (u UnionStatus) IsWildcard() bool { return u == UnionEither }

// Matches reports whether the requirement accepts the given profile value.
func (u UnionStatus) Matches(other UnionStatus) bool {
	if u.IsWildcard() {
		return true
	}
	return other != "" && strings.EqualFold(string(u), string(other))
}

// Ethnicity is an actor's ethnicity or a casting ethnicity requirement.
// EthnicityAny is the explicit wildcard used by casting calls.
type Ethnicity string

// EthnicityAny accepts every profile value.
const EthnicityAny Ethnicity = "ANY"

// IsWildcard reports whether the requirement accepts any ethnicity.
func (e Ethnicity) IsWildcard() bool { return e == EthnicityAny }

// Matches reports whether the requirement accepts the given profile value.
func (e Ethnicity) Matches(other Ethnicity) bool {
	if e.IsWildcard() {
		return true
	}
	return other != "" && strings.EqualFold(string(e), string(other))
}

// RoleType categorizes a casting call and an actor's role interests.
type RoleType string

const (
	RoleFilm       RoleType = "FILM"
	RoleTelevision RoleType = "TELEVISION"
	RoleCommercial RoleType = "COMMERCIAL"
	RoleTheater    RoleType = "THEATER"
	RoleVoiceover  RoleType = "VOICEOVER"
	RolePrint      RoleType = "PRINT"
)

// Profile is the matchable snapshot of an actor, owned by exactly one account.
type Profile struct {
	ID                  uuid.UUID
	AccountID           uuid.UUID
	Name                string
	Email               string
	Phone               string
	Age                 *int
	PlayableAgeMin      *int
	PlayableAgeMax      *int
	Gender              Gender
	City                string
	Region              string
	UnionStatus         UnionStatus
	Ethnicity           Ethnicity
	RoleInterests       []RoleType
	HeadshotURL         string
	ResumeURL           string
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// InterestedIn reports whether the profile lists the given role type.
func (p Profile) InterestedIn(role RoleType) bool {
	for _, interest := range p.RoleInterests {
		if strings.EqualFold(string(interest), string(role)) {
			return true
		}
	}
	return false
}

// CastingCall is an open role opportunity with matching requirements and a deadline.
type CastingCall struct {
	ID                  uuid.UUID
	Title               string
	Description         string
	CastingContactName  string
	CastingContactEmail string
	AgeMin              int
	AgeMax              int
	Gender              Gender
	UnionStatus         UnionStatus
	Ethnicity           Ethnicity
	Location            string
	RoleType            RoleType
	Deadline            time.Time
	Status              CallStatus
	CreatedAt           time.Time
}

// CallStatus gates a casting call in addition to its deadline.
type CallStatus string

const (
	CallStatusActive CallStatus = "active"
	CallStatusClosed CallStatus = "closed"
)

// OpenAt reports whether the call accepts submissions at the given instant.
// Openness is a function of the clock, not a stored flag.
func (c CastingCall) OpenAt(now time.Time) bool {
	return c.Status == CallStatusActive && c.Deadline.After(now)
}
