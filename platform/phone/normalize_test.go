package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"us national", "(212) 555-0123", "+12125550123"},
		{"already e164", "+12125550123", "+12125550123"},
		{"international", "+44 20 7946 0958", "+442079460958"},
		{"whitespace only", "   ", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeE164(tc.input)
			if err != nil {
				t.Fatalf("NormalizeE164(%q) returned error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeE164RejectsInvalid(t *testing.T) {
	for _, input := range []string{"not-a-phone", "123", "+1 999 000"} {
		if _, err := NormalizeE164(input); err == nil {
			t.Fatalf("NormalizeE164(%q) accepted an invalid number", input)
		}
	}
}
