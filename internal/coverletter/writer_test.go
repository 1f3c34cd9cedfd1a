package coverletter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"castmatch_backend/internal/events"
	"castmatch_backend/platform/logger"
)

type stubGenerator struct {
	gotPrompt string
	letter    string
	err       error
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.letter, s.err
}

func submissionEvent() events.SubmissionRecorded {
	age := 30
	return events.SubmissionRecorded{
		BaseEvent:     events.NewBaseEvent(),
		SubmissionID:  uuid.New(),
		Score:         90,
		ProfileName:   "Maya Chen",
		ProfileCity:   "Springfield",
		ProfileRegion: "Illinois",
		ProfileAge:    &age,
		ProfileUnion:  "UNION",
		CallTitle:     "Lead Detective",
		CallRoleType:  "FILM",
		CallLocation:  "Chicago, IL",
	}
}

func TestWriteUsesGenerator(t *testing.T) {
	gen := &stubGenerator{letter: "Please consider Maya Chen."}
	writer := NewWriter(gen, logger.New("development"))

	letter := writer.Write(context.Background(), submissionEvent())
	if letter != "Please consider Maya Chen." {
		t.Fatalf("unexpected letter: %q", letter)
	}

	for _, want := range []string{"Maya Chen", "Lead Detective", "FILM", "Springfield", "90%"} {
		if !strings.Contains(gen.gotPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gen.gotPrompt)
		}
	}
}

func TestWriteStripsMarkdownFences(t *testing.T) {
	gen := &stubGenerator{letter: "```\nDear casting team,\n```"}
	writer := NewWriter(gen, logger.New("development"))

	if letter := writer.Write(context.Background(), submissionEvent()); letter != "Dear casting team," {
		t.Fatalf("expected fences stripped, got %q", letter)
	}
}

func TestWriteReturnsEmptyOnFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	writer := NewWriter(gen, logger.New("development"))

	if letter := writer.Write(context.Background(), submissionEvent()); letter != "" {
		t.Fatalf("expected empty letter on failure, got %q", letter)
	}
}

func TestDisabledWriterReturnsEmpty(t *testing.T) {
	writer := NewWriter(nil, logger.New("development"))

	if writer.Enabled() {
		t.Fatal("writer without generator must report disabled")
	}
	if letter := writer.Write(context.Background(), submissionEvent()); letter != "" {
		t.Fatalf("expected empty letter from disabled writer, got %q", letter)
	}
}
