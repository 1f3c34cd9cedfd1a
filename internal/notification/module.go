// Package notification turns submission-recorded events into emails.
// This module subscribes to events and inverts the dependency: the matching
// engine and submission service never know about email providers, templates,
// or cover letter generation.
package notification

import (
	"context"
	"fmt"
	"strconv"

	"castmatch_backend/internal/coverletter"
	"castmatch_backend/internal/email"
	"castmatch_backend/internal/events"
	"castmatch_backend/platform/logger"
)

// Module dispatches notifications for recorded submissions.
type Module struct {
	sender email.Sender
	writer *coverletter.Writer
	log    *logger.Logger
}

// NewModule creates the notification module. The writer may be nil when
// cover letter generation is disabled.
func NewModule(sender email.Sender, writer *coverletter.Writer, log *logger.Logger) *Module {
	return &Module{sender: sender, writer: writer, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterHandlers subscribes to the submission-recorded event on the bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.SubmissionRecorded{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.SubmissionRecorded:
		m.handleSubmissionRecorded(ctx, e)
		return nil
	default:
		return fmt.Errorf("notification: unexpected event %s", event.EventName())
	}
}

// handleSubmissionRecorded sends both submission emails. The cover letter is
// best-effort, and the two sends are independent: a failure of either is
// logged and never retried here, and never affects the recorded submission.
func (m *Module) handleSubmissionRecorded(ctx context.Context, event events.SubmissionRecorded) {
	letter := ""
	if m.writer.Enabled() {
		letter = m.writer.Write(ctx, event)
	}

	if err := m.sender.SendSubmissionEmail(ctx, event.CastingContactEmail, email.SubmissionEmailData{
		ContactName: event.CastingContactName,
		CallTitle:   event.CallTitle,
		RoleType:    event.CallRoleType,
		Location:    event.CallLocation,
		ActorName:   event.ProfileName,
		ActorEmail:  event.ProfileEmail,
		ActorPhone:  event.ProfilePhone,
		ActorCity:   event.ProfileCity,
		ActorRegion: event.ProfileRegion,
		ActorAge:    formatAge(event.ProfileAge),
		ActorUnion:  event.ProfileUnion,
		HeadshotURL: event.HeadshotURL,
		ResumeURL:   event.ResumeURL,
		Score:       event.Score,
		CoverLetter: letter,
	}); err != nil {
		m.log.Error("submission email failed",
			"submissionId", event.SubmissionID,
			"to", event.CastingContactEmail,
			"error", err,
		)
	}

	if err := m.sender.SendSubmissionConfirmationEmail(ctx, event.ProfileEmail, email.ConfirmationEmailData{
		ActorName: event.ProfileName,
		CallTitle: event.CallTitle,
		RoleType:  event.CallRoleType,
		Method:    event.Method,
		Score:     event.Score,
	}); err != nil {
		m.log.Error("submission confirmation email failed",
			"submissionId", event.SubmissionID,
			"to", event.ProfileEmail,
			"error", err,
		)
	}
}

func formatAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}
