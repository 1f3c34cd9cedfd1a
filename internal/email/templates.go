package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type submissionEmailData struct {
	baseEmailData
	SubmissionEmailData
}

type confirmationEmailData struct {
	baseEmailData
	ConfirmationEmailData
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderSubmissionEmail(data SubmissionEmailData) (string, error) {
	return renderEmailTemplate("submission.html", submissionEmailData{
		baseEmailData: baseEmailData{
			Title:      "New submission",
			Heading:    fmt.Sprintf("New submission for %s", data.CallTitle),
			Subheading: fmt.Sprintf("%d%% match", data.Score),
		},
		SubmissionEmailData: data,
	})
}

func renderConfirmationEmail(data ConfirmationEmailData) (string, error) {
	return renderEmailTemplate("submission_confirmation.html", confirmationEmailData{
		baseEmailData: baseEmailData{
			Title:   "Submission confirmed",
			Heading: "You're in the running",
		},
		ConfirmationEmailData: data,
	})
}
