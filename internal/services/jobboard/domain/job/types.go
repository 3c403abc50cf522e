package job

import "strings"

// Type is a contract type.
type Type string

const (
	TypePermanent  Type = "PERMANENT"
	TypeFixedTerm  Type = "FIXED_TERM"
	TypeInternship Type = "INTERNSHIP"
	TypeFreelance  Type = "FREELANCE"
)

// typeAliases maps French contract labels onto canonical types.
var typeAliases = map[string]Type{
	"CDI":   TypePermanent,
	"CDD":   TypeFixedTerm,
	"STAGE": TypeInternship,
}

// ParseType parses a contract type label case-insensitively.
func ParseType(value string) (Type, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch Type(normalized) {
	case TypePermanent, TypeFixedTerm, TypeInternship, TypeFreelance:
		return Type(normalized), true
	}
	if t, ok := typeAliases[normalized]; ok {
		return t, true
	}
	return "", false
}

// Status is the publication state of a job.
type Status string

const (
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// ParseStatus parses a status label case-insensitively.
func ParseStatus(value string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(value))); s {
	case StatusPublished, StatusArchived:
		return s, true
	default:
		return "", false
	}
}

// Toggle returns the other status.
func (s Status) Toggle() Status {
	if s == StatusPublished {
		return StatusArchived
	}
	return StatusPublished
}
