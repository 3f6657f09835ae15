package migration

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The legacy export stores owners and conditions as machine codes. The fixed
// maps below carry the exact display names the club has always used; unknown
// codes fall back to a readable form so imports never drop a tag. Owners only
// get their first letter uppercased; conditions also turn underscores into
// spaces, matching how the old system rendered each field.
var ownerNames = map[string]string{
	"vtc":      "VTC Woerden",
	"gemeente": "Gemeente",
}

var conditionNames = map[string]string{
	"zeer_goed":   "Zeer goed",
	"goed":        "Goed",
	"redelijk":    "Redelijk",
	"slecht":      "Slecht",
	"zeer_slecht": "Zeer slecht",
}

var upperFirst = cases.Upper(language.Dutch)

// OwnerName maps a legacy owner code to its display name.
func OwnerName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if name, ok := ownerNames[strings.ToLower(code)]; ok {
		return name
	}
	return capitalize(code)
}

// ConditionName maps a legacy condition code to its display name.
func ConditionName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if name, ok := conditionNames[strings.ToLower(code)]; ok {
		return name
	}
	return humanize(code)
}

// LocationName passes legacy locations through verbatim, trimmed. Locations
// were free text in the old system and carry no code mapping.
func LocationName(raw string) string {
	return strings.TrimSpace(raw)
}

// humanize turns a machine code like "in_reparatie" into "In reparatie":
// underscores become spaces and only the first letter is uppercased.
func humanize(code string) string {
	return capitalize(strings.ReplaceAll(code, "_", " "))
}

// capitalize uppercases the first letter and leaves the rest alone.
func capitalize(s string) string {
	r := []rune(s)
	return upperFirst.String(string(r[0])) + string(r[1:])
}

// legacyTimeLayouts is tried in order when parsing legacy timestamps. The old
// export only ever wrote ISO 8601 with an offset or Z suffix; anything else
// is treated as unparseable.
var legacyTimeLayouts = []string{
	time.RFC3339,
}

// parseLegacyTime parses a legacy timestamp, falling back to now so a bad
// date never blocks a record.
func parseLegacyTime(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now
}
