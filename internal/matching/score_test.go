package matching

import "testing"

func intptr(v int) *int { return &v }

func baseProfile() Profile {
	return Profile{
		Name:        "Maya Chen",
		Age:         intptr(30),
		Gender:      GenderFemale,
		City:        "Springfield",
		Region:      "Illinois",
		UnionStatus: UnionMember,
		Ethnicity:   Ethnicity("ASIAN"),
	}
}

func baseCall() CastingCall {
	return CastingCall{
		Title:       "Lead Detective",
		AgeMin:      25,
		AgeMax:      35,
		Gender:      GenderFemale,
		UnionStatus: UnionMember,
		Ethnicity:   EthnicityAny,
		Location:    "Chicago, IL",
		RoleType:    RoleFilm,
	}
}

func TestScoreRegionOnlyMatch(t *testing.T) {
	// Age 30 + gender 20 + location partial 15 + union 15 + ethnicity 10 = 90.
	score := Score(baseProfile(), baseCall())
	if score != 90 {
		t.Fatalf("expected score 90, got %d", score)
	}
	if !ShouldAutoSubmit(score) {
		t.Fatalf("expected score %d to auto-submit", score)
	}
}

func TestScoreFullLocationMatch(t *testing.T) {
	profile := baseProfile()
	profile.City = "Chicago"

	b := ScoreBreakdown(profile, baseCall())
	if b.Location != 25 {
		t.Fatalf("expected full location credit 25, got %d", b.Location)
	}
	if b.Total != 100 {
		t.Fatalf("expected total 100, got %d", b.Total)
	}
}

func TestScoreBelowThreshold(t *testing.T) {
	// Ethnicity requirement mismatch drops the total to 80.
	call := baseCall()
	call.Ethnicity = Ethnicity("BLACK")

	score := Score(baseProfile(), call)
	if score != 80 {
		t.Fatalf("expected score 80, got %d", score)
	}
	if ShouldAutoSubmit(score) {
		t.Fatalf("expected score %d not to auto-submit", score)
	}
}

func TestScoreRoleInterestBonus(t *testing.T) {
	profile := baseProfile()
	profile.RoleInterests = []RoleType{RoleFilm, RoleTheater}

	b := ScoreBreakdown(profile, baseCall())
	if b.RoleBonus != 5 {
		t.Fatalf("expected role bonus 5, got %d", b.RoleBonus)
	}
	if b.Total != 95 {
		t.Fatalf("expected total 95, got %d", b.Total)
	}
}

func TestScoreClampedAt100(t *testing.T) {
	profile := baseProfile()
	profile.City = "Chicago"
	profile.RoleInterests = []RoleType{RoleFilm}

	// All criteria plus bonus would sum to 105.
	if score := Score(profile, baseCall()); score != 100 {
		t.Fatalf("expected clamped score 100, got %d", score)
	}
}

func TestScoreAgeFallbackToPlayableMin(t *testing.T) {
	profile := baseProfile()
	profile.Age = nil
	profile.PlayableAgeMin = intptr(28)

	b := ScoreBreakdown(profile, baseCall())
	if b.Age != 30 {
		t.Fatalf("expected full age credit via playable-age fallback, got %d", b.Age)
	}
}

func TestScoreAgeRangeOverlapPartial(t *testing.T) {
	profile := baseProfile()
	profile.Age = intptr(40) // outside 25-35
	profile.PlayableAgeMin = intptr(33)
	profile.PlayableAgeMax = intptr(45)

	b := ScoreBreakdown(profile, baseCall())
	if b.Age != 20 {
		t.Fatalf("expected partial age credit 20 on range overlap, got %d", b.Age)
	}
}

func TestScoreAgeNoCredit(t *testing.T) {
	profile := baseProfile()
	profile.Age = intptr(50)
	profile.PlayableAgeMin = nil
	profile.PlayableAgeMax = nil

	b := ScoreBreakdown(profile, baseCall())
	if b.Age != 0 {
		t.Fatalf("expected no age credit, got %d", b.Age)
	}
}

func TestScoreEmptyLocationUnconstrained(t *testing.T) {
	call := baseCall()
	call.Location = ""

	b := ScoreBreakdown(baseProfile(), call)
	if b.Location != 25 {
		t.Fatalf("expected full location credit for unconstrained call, got %d", b.Location)
	}
}

func TestScoreStateAbbreviationBothDirections(t *testing.T) {
	profile := baseProfile()
	profile.City = "Detroit"
	profile.Region = "Michigan"

	call := baseCall()
	call.Location = "Detroit, MI"
	if b := ScoreBreakdown(profile, call); b.Location != 25 {
		t.Fatalf("expected abbreviation to match full region name, got %d", b.Location)
	}

	profile.Region = "MI"
	call.Location = "Detroit, Michigan"
	if b := ScoreBreakdown(profile, call); b.Location != 25 {
		t.Fatalf("expected region abbreviation to match full state name, got %d", b.Location)
	}
}

func TestScoreAbbreviationRequiresWordBoundary(t *testing.T) {
	profile := baseProfile()
	profile.City = "Lansing"
	profile.Region = "Michigan"

	call := baseCall()
	call.Location = "Miami, FL"
	if b := ScoreBreakdown(profile, call); b.Location != 0 {
		t.Fatalf("expected no location credit, 'mi' must not match inside 'Miami', got %d", b.Location)
	}
}

func TestScoreWildcardRequirements(t *testing.T) {
	call := baseCall()
	call.Gender = GenderAny
	call.UnionStatus = UnionEither
	call.Ethnicity = EthnicityAny

	profile := baseProfile()
	profile.Gender = GenderNonBinary
	profile.UnionStatus = UnionNonUnion
	profile.Ethnicity = Ethnicity("LATINO")

	b := ScoreBreakdown(profile, call)
	if b.Gender != 20 || b.Union != 15 || b.Ethnicity != 10 {
		t.Fatalf("expected wildcards to grant full credit, got gender=%d union=%d ethnicity=%d",
			b.Gender, b.Union, b.Ethnicity)
	}
}

func TestScoreMissingOptionalFieldsStillTotal(t *testing.T) {
	profile := Profile{Name: "Minimal", Gender: GenderMale, City: "Austin", UnionStatus: UnionNonUnion}

	call := baseCall()
	call.Gender = GenderMale
	call.UnionStatus = UnionNonUnion
	call.Location = "Austin, TX"

	// No age data and no region: 0 + 20 + 0 + 15 + 10 = 45.
	if score := Score(profile, call); score != 45 {
		t.Fatalf("expected score 45 for minimal profile, got %d", score)
	}
}

func TestShouldAutoSubmitBoundary(t *testing.T) {
	cases := []struct {
		score int
		want  bool
	}{
		{84, false},
		{85, true},
		{86, true},
		{0, false},
		{100, true},
	}
	for _, tc := range cases {
		if got := ShouldAutoSubmit(tc.score); got != tc.want {
			t.Fatalf("ShouldAutoSubmit(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}
}
