// Package transport defines request and response DTOs for submission endpoints.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateSubmissionRequest is the body for a manual submission.
type CreateSubmissionRequest struct {
	CastingCallID string `json:"castingCallId" validate:"required,uuid4"`
}

// UpdateStatusRequest moves a submission through downstream review.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=sent viewed shortlisted rejected"`
}

// SubmissionResponse is returned when a manual submission is recorded.
// WouldAutoMatch tells the actor whether the engine would have submitted
// this pair on its own.
type SubmissionResponse struct {
	ID             uuid.UUID `json:"id"`
	CastingCallID  uuid.UUID `json:"castingCallId"`
	CallTitle      string    `json:"callTitle"`
	Method         string    `json:"method"`
	Status         string    `json:"status"`
	MatchScore     int       `json:"matchScore"`
	WouldAutoMatch bool      `json:"wouldAutoMatch"`
	CreatedAt      time.Time `json:"createdAt"`
}
