package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"castmatch_backend/internal/profiles/transport"
	"castmatch_backend/platform/apperr"
	"castmatch_backend/platform/logger"
)

func intptr(v int) *int { return &v }

func upsertRequest() transport.UpsertProfileRequest {
	return transport.UpsertProfileRequest{
		Name:        "Maya Chen",
		Email:       "maya@example.com",
		Phone:       "(212) 555-0123",
		Age:         intptr(30),
		Gender:      "FEMALE",
		City:        "Springfield",
		Region:      "Illinois",
		UnionStatus: "UNION",
		Ethnicity:   "ASIAN",
	}
}

func TestUpsertRejectsInvalidPhone(t *testing.T) {
	svc := New(nil, nil, nil, nil, nil, logger.New("development"))

	req := upsertRequest()
	req.Phone = "not-a-phone"

	_, err := svc.Upsert(context.Background(), uuid.New(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unparseable phone, got %v", err)
	}
}

func TestUpsertRejectsInvertedPlayableRange(t *testing.T) {
	svc := New(nil, nil, nil, nil, nil, logger.New("development"))

	req := upsertRequest()
	req.PlayableAgeMin = intptr(40)
	req.PlayableAgeMax = intptr(25)

	_, err := svc.Upsert(context.Background(), uuid.New(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for inverted playable range, got %v", err)
	}
}
