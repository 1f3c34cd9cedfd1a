package matching

import "strings"

// Criterion weights. The five weighted criteria sum to a fixed 100-point
// denominator; the role-interest bonus is additive on top of it, so interest
// can only raise a score, never lower one.
const (
	ageWeight        = 30
	agePartialCredit = 20

	genderWeight = 20

	locationWeight        = 25
	locationPartialCredit = 15

	unionWeight     = 15
	ethnicityWeight = 10

	roleInterestBonus = 5

	maxScore = 100
)

// Breakdown reports the points earned per criterion for one evaluated pair.
// It backs both the auto-submission decision and the match displays shown to
// actors and administrators, so the numbers users see are the numbers the
// engine acted on.
type Breakdown struct {
	Age       int `json:"age"`
	Gender    int `json:"gender"`
	Location  int `json:"location"`
	Union     int `json:"union"`
	Ethnicity int `json:"ethnicity"`
	RoleBonus int `json:"roleBonus"`
	Total     int `json:"total"`
}

// Score computes the compatibility percentage for a profile and a casting
// call. It is deterministic, side-effect free, and total: missing optional
// profile fields earn zero (or partial) credit instead of failing.
func Score(profile Profile, call CastingCall) int {
	return ScoreBreakdown(profile, call).Total
}

// ScoreBreakdown computes the per-criterion points for a profile and a
// casting call. The total is clamped to [0, 100].
func ScoreBreakdown(profile Profile, call CastingCall) Breakdown {
	b := Breakdown{
		Age:      scoreAge(profile, call),
		Location: scoreLocation(profile, call),
	}

	if call.Gender.Matches(profile.Gender) {
		b.Gender = genderWeight
	}
	if call.UnionStatus.Matches(profile.UnionStatus) {
		b.Union = unionWeight
	}
	if call.Ethnicity.Matches(profile.Ethnicity) {
		b.Ethnicity = ethnicityWeight
	}
	if profile.InterestedIn(call.RoleType) {
		b.RoleBonus = roleInterestBonus
	}

	total := b.Age + b.Gender + b.Location + b.Union + b.Ethnicity + b.RoleBonus
	if total > maxScore {
		total = maxScore
	}
	if total < 0 {
		total = 0
	}
	b.Total = total

	return b
}

// scoreAge awards full credit when the actor's age (or playable-age minimum
// as fallback) falls inside the call's range, and partial credit when only
// the playable range overlaps it.
func scoreAge(profile Profile, call CastingCall) int {
	effectiveAge := profile.Age
	if effectiveAge == nil {
		effectiveAge = profile.PlayableAgeMin
	}

	if effectiveAge != nil && *effectiveAge >= call.AgeMin && *effectiveAge <= call.AgeMax {
		return ageWeight
	}

	if profile.PlayableAgeMin != nil && profile.PlayableAgeMax != nil &&
		*profile.PlayableAgeMin <= call.AgeMax && *profile.PlayableAgeMax >= call.AgeMin {
		return agePartialCredit
	}

	return 0
}

// scoreLocation awards full credit when the call's free-text location
// mentions both the actor's city and region, and partial credit on a
// region-only match. A call without location text is unconstrained.
func scoreLocation(profile Profile, call CastingCall) int {
	location := strings.ToLower(strings.TrimSpace(call.Location))
	if location == "" {
		return locationWeight
	}

	city := strings.ToLower(strings.TrimSpace(profile.City))
	region := strings.ToLower(strings.TrimSpace(profile.Region))

	cityHit := city != "" && strings.Contains(location, city)
	regionHit := region != "" && mentionsRegion(location, region)

	switch {
	case cityHit && regionHit:
		return locationWeight
	case regionHit:
		return locationPartialCredit
	default:
		return 0
	}
}

// mentionsRegion matches a region by name or by US state abbreviation, so a
// profile region "Michigan" matches a call location "Detroit, MI" and vice
// versa.
func mentionsRegion(location, region string) bool {
	if strings.Contains(location, region) {
		return true
	}

	if abbrev, ok := usStateAbbrevs[region]; ok {
		return containsToken(location, abbrev)
	}

	// Region stored as an abbreviation; match the call's full state name.
	for name, abbrev := range usStateAbbrevs {
		if abbrev == region {
			return strings.Contains(location, name) || containsToken(location, abbrev)
		}
	}

	return false
}

// containsToken reports whether text contains value as a standalone word,
// so that "mi" matches "Detroit, MI" but not "Miami".
func containsToken(text, value string) bool {
	for _, token := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if token == value {
			return true
		}
	}
	return false
}

var usStateAbbrevs = map[string]string{
	"alabama": "al", "alaska": "ak", "arizona": "az", "arkansas": "ar",
	"california": "ca", "colorado": "co", "connecticut": "ct", "delaware": "de",
	"florida": "fl", "georgia": "ga", "hawaii": "hi", "idaho": "id",
	"illinois": "il", "indiana": "in", "iowa": "ia", "kansas": "ks",
	"kentucky": "ky", "louisiana": "la", "maine": "me", "maryland": "md",
	"massachusetts": "ma", "michigan": "mi", "minnesota": "mn", "mississippi": "ms",
	"missouri": "mo", "montana": "mt", "nebraska": "ne", "nevada": "nv",
	"new hampshire": "nh", "new jersey": "nj", "new mexico": "nm", "new york": "ny",
	"north carolina": "nc", "north dakota": "nd", "ohio": "oh", "oklahoma": "ok",
	"oregon": "or", "pennsylvania": "pa", "rhode island": "ri", "south carolina": "sc",
	"south dakota": "sd", "tennessee": "tn", "texas": "tx", "utah": "ut",
	"vermont": "vt", "virginia": "va", "washington": "wa", "west virginia": "wv",
	"wisconsin": "wi", "wyoming": "wy",
}
