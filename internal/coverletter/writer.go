package coverletter

import (
	"context"
	"strconv"
	"strings"

	"castmatch_backend/internal/events"
	"castmatch_backend/platform/logger"
)

// Writer turns a recorded submission into a short cover letter. A nil
// generator disables writing; Write then returns empty immediately.
type Writer struct {
	generator Generator
	log       *logger.Logger
}

// NewWriter creates a cover letter writer.
func NewWriter(generator Generator, log *logger.Logger) *Writer {
	return &Writer{generator: generator, log: log}
}

// Enabled reports whether a generator is configured.
func (w *Writer) Enabled() bool {
	return w != nil && w.generator != nil
}

// Write generates a cover letter for the submission. On any failure it logs
// and returns empty so the notification goes out without a letter.
func (w *Writer) Write(ctx context.Context, event events.SubmissionRecorded) string {
	if !w.Enabled() {
		return ""
	}

	letter, err := w.generator.GenerateContent(ctx, buildPrompt(event))
	if err != nil {
		w.log.Warn("cover letter generation failed",
			"submissionId", event.SubmissionID,
			"error", err,
		)
		return ""
	}

	return cleanLetter(letter)
}

func buildPrompt(event events.SubmissionRecorded) string {
	var b strings.Builder
	b.WriteString("Write a brief, professional cover letter (under 120 words) submitting an actor for a casting call.\n")
	b.WriteString("Write in third person on behalf of the CastMatch platform. Plain text only, no placeholders, no subject line.\n\n")

	b.WriteString("Casting call: ")
	b.WriteString(event.CallTitle)
	b.WriteString(" (")
	b.WriteString(event.CallRoleType)
	if event.CallLocation != "" {
		b.WriteString(", ")
		b.WriteString(event.CallLocation)
	}
	b.WriteString(")\n")

	b.WriteString("Actor: ")
	b.WriteString(event.ProfileName)
	b.WriteString(", based in ")
	b.WriteString(event.ProfileCity)
	if event.ProfileRegion != "" {
		b.WriteString(", ")
		b.WriteString(event.ProfileRegion)
	}
	b.WriteString("\n")

	if event.ProfileAge != nil {
		b.WriteString("Age: ")
		b.WriteString(strconv.Itoa(*event.ProfileAge))
		b.WriteString("\n")
	}
	b.WriteString("Union status: ")
	b.WriteString(event.ProfileUnion)
	b.WriteString("\n")
	b.WriteString("Match score: ")
	b.WriteString(strconv.Itoa(event.Score))
	b.WriteString("%\n")

	return b.String()
}

// cleanLetter strips markdown fences and surrounding whitespace the model
// sometimes wraps its output in.
func cleanLetter(letter string) string {
	letter = strings.TrimSpace(letter)
	letter = strings.TrimPrefix(letter, "```")
	letter = strings.TrimSuffix(letter, "```")
	return strings.TrimSpace(letter)
}
