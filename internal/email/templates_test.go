package email

import (
	"strings"
	"testing"
)

func TestRenderSubmissionEmail(t *testing.T) {
	html, err := renderSubmissionEmail(SubmissionEmailData{
		ContactName: "Sam Director",
		CallTitle:   "Lead Detective",
		RoleType:    "FILM",
		Location:    "Chicago, IL",
		ActorName:   "Maya Chen",
		ActorEmail:  "maya@example.com",
		ActorCity:   "Springfield",
		ActorRegion: "Illinois",
		ActorAge:    "30",
		ActorUnion:  "UNION",
		HeadshotURL: "https://cdn.example.com/headshot.jpg",
		Score:       90,
		CoverLetter: "Please consider Maya.",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"Sam Director", "Lead Detective", "Maya Chen", "maya@example.com",
		"90%", "Please consider Maya.", "headshot.jpg",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered email missing %q", want)
		}
	}
}

func TestRenderSubmissionEmailOmitsEmptyFields(t *testing.T) {
	html, err := renderSubmissionEmail(SubmissionEmailData{
		ContactName: "Sam Director",
		CallTitle:   "Lead Detective",
		RoleType:    "FILM",
		ActorName:   "Maya Chen",
		ActorEmail:  "maya@example.com",
		ActorCity:   "Springfield",
		ActorUnion:  "NON_UNION",
		Score:       88,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if strings.Contains(html, "Phone") {
		t.Fatal("empty phone must not render a row")
	}
	if strings.Contains(html, "Headshot") {
		t.Fatal("empty headshot must not render a row")
	}
}

func TestRenderConfirmationEmailAutoVsManual(t *testing.T) {
	auto, err := renderConfirmationEmail(ConfirmationEmailData{
		ActorName: "Maya Chen",
		CallTitle: "Lead Detective",
		RoleType:  "FILM",
		Method:    "auto",
		Score:     90,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(auto, "submitted automatically") {
		t.Fatal("auto confirmation must mention automatic submission")
	}

	manual, err := renderConfirmationEmail(ConfirmationEmailData{
		ActorName: "Maya Chen",
		CallTitle: "Lead Detective",
		RoleType:  "FILM",
		Method:    "manual",
		Score:     70,
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(manual, "submitted automatically") {
		t.Fatal("manual confirmation must not claim automatic submission")
	}
}
