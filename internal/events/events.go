// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"castmatch_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Casting Domain Events
// =============================================================================

// CastingCallPublished is published when an administrator creates a casting
// call. It triggers the call-fanout over all completed profiles.
type CastingCallPublished struct {
	BaseEvent
	CallID uuid.UUID `json:"callId"`
	Title  string    `json:"title"`
}

func (e CastingCallPublished) EventName() string { return "castings.call.published" }

// ProfileChanged is published when a profile is created or updated, including
// onboarding completion. It triggers the profile-fanout over all open calls.
type ProfileChanged struct {
	BaseEvent
	ProfileID uuid.UUID `json:"profileId"`
	AccountID uuid.UUID `json:"accountId"`
	Source    string    `json:"source"` // "created", "updated", "onboarding"
}

func (e ProfileChanged) EventName() string { return "profiles.profile.changed" }

// =============================================================================
// Submission Domain Events
// =============================================================================

// SubmissionRecorded is published exactly once per newly created submission,
// after the unique insert succeeded. It carries the full notification payload
// so the dispatcher needs no further reads before emailing.
type SubmissionRecorded struct {
	BaseEvent
	SubmissionID  uuid.UUID `json:"submissionId"`
	ProfileID     uuid.UUID `json:"profileId"`
	CastingCallID uuid.UUID `json:"castingCallId"`
	Method        string    `json:"method"`
	Score         int       `json:"score"`

	ProfileName   string `json:"profileName"`
	ProfileEmail  string `json:"profileEmail"`
	ProfilePhone  string `json:"profilePhone,omitempty"`
	ProfileCity   string `json:"profileCity,omitempty"`
	ProfileRegion string `json:"profileRegion,omitempty"`
	ProfileAge    *int   `json:"profileAge,omitempty"`
	ProfileUnion  string `json:"profileUnion,omitempty"`
	HeadshotURL   string `json:"headshotUrl,omitempty"`
	ResumeURL     string `json:"resumeUrl,omitempty"`

	CallTitle           string `json:"callTitle"`
	CallRoleType        string `json:"callRoleType"`
	CallLocation        string `json:"callLocation,omitempty"`
	CastingContactName  string `json:"castingContactName"`
	CastingContactEmail string `json:"castingContactEmail"`
}

func (e SubmissionRecorded) EventName() string { return "submissions.submission.recorded" }
