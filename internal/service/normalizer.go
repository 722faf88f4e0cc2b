package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/telemark/telemark-server/internal/model"
)

var birthDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	time.RFC3339,
}

// NormalizedFields is the canonical shape of a raw row's optional fields.
// Unparseable input yields nil fields, never an error.
type NormalizedFields struct {
	Gender          model.Gender
	Age             *int
	MaskedBirthDate *string
}

// NormalizeRow canonicalizes the gender and birth date of a raw row.
// The age is computed relative to now; the birth date is kept only in
// masked YYYY-XX-XX form.
func NormalizeRow(row model.ImportRow, now time.Time) NormalizedFields {
	fields := NormalizedFields{
		Gender: NormalizeGender(row.Gender),
	}

	birth, ok := parseBirthDate(row.BirthDate)
	if !ok {
		return fields
	}

	age := AgeAt(birth, now)
	masked := MaskBirthDate(birth)
	fields.Age = &age
	fields.MaskedBirthDate = &masked

	return fields
}

// NormalizeGender maps a free-text gender token onto the canonical set.
// The mapping is an exhaustive enumeration, not an inference: anything
// outside the known male/female token sets is unknown.
func NormalizeGender(raw string) model.Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "남성", "남", "남자", "m":
		return model.GenderMale
	case "여성", "여", "여자", "f":
		return model.GenderFemale
	default:
		return model.GenderUnknown
	}
}

// AgeAt returns completed years since birth as of today.
func AgeAt(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// MaskBirthDate redacts month and day, keeping the four-digit year.
func MaskBirthDate(birth time.Time) string {
	return fmt.Sprintf("%04d-XX-XX", birth.Year())
}

func parseBirthDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
