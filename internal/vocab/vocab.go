// Package vocab holds the closed vocabularies for enumeration fields:
// the legal issue types and priorities, and the project catalog with its
// alias table. It is pure data plus lookups; the only failure mode is
// "no match".
package vocab

import (
	"strings"

	"github.com/quillhq/quill/pkg/models"
)

// Canonical issue types.
const (
	TypeBug   = "Bug"
	TypeTask  = "Task"
	TypeStory = "Story"
	TypeEpic  = "Epic"
)

// Canonical priorities, lowest to highest.
const (
	PriorityLowest  = "Lowest"
	PriorityLow     = "Low"
	PriorityMedium  = "Medium"
	PriorityHigh    = "High"
	PriorityHighest = "Highest"
)

// Defaults applied to enumeration fields when extraction is below the
// acceptance threshold. Free-text fields are never defaulted.
const (
	DefaultType     = TypeBug
	DefaultPriority = PriorityMedium
	DefaultProject  = "Engineering"
)

// project is one entry of the project catalog.
type project struct {
	// Name is the canonical project name shown to the user.
	Name string

	// Key is the tracker-side project key (e.g., the JIRA project key).
	Key string

	// Aliases are accepted spellings, matched case-insensitively.
	Aliases []string
}

// projects is the fixed project catalog.
var projects = []project{
	{Name: "Engineering", Key: "ENG", Aliases: []string{"eng", "engineering"}},
	{Name: "Product", Key: "PROD", Aliases: []string{"product", "prod"}},
	{Name: "Demo", Key: "DEMO", Aliases: []string{"demo", "sandbox"}},
}

// typeAliases maps accepted spellings to canonical issue types.
var typeAliases = map[string]string{
	"bug":     TypeBug,
	"defect":  TypeBug,
	"task":    TypeTask,
	"chore":   TypeTask,
	"story":   TypeStory,
	"feature": TypeStory,
	"epic":    TypeEpic,
}

// priorityAliases maps accepted spellings to canonical priorities.
var priorityAliases = map[string]string{
	"lowest":   PriorityLowest,
	"trivial":  PriorityLowest,
	"low":      PriorityLow,
	"minor":    PriorityLow,
	"medium":   PriorityMedium,
	"normal":   PriorityMedium,
	"high":     PriorityHigh,
	"major":    PriorityHigh,
	"urgent":   PriorityHighest,
	"highest":  PriorityHighest,
	"critical": PriorityHighest,
	"blocker":  PriorityHighest,
}

// Canonicalize maps a raw value for an enumeration field to its canonical
// form. Matching is case-insensitive and ignores surrounding whitespace.
// It returns ("", false) when the value matches nothing in the vocabulary,
// and passes free-text fields through unchanged.
func Canonicalize(field models.Field, raw string) (string, bool) {
	if !field.IsEnum() {
		return raw, true
	}

	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return "", false
	}

	switch field {
	case models.FieldType:
		if canonical, ok := typeAliases[needle]; ok {
			return canonical, true
		}
	case models.FieldPriority:
		if canonical, ok := priorityAliases[needle]; ok {
			return canonical, true
		}
	case models.FieldProject:
		for _, p := range projects {
			if needle == strings.ToLower(p.Name) || needle == strings.ToLower(p.Key) {
				return p.Name, true
			}
			for _, alias := range p.Aliases {
				if needle == alias {
					return p.Name, true
				}
			}
		}
	}

	return "", false
}

// IsValid reports whether value is a canonical member of the field's
// enumeration. Free-text fields are always valid.
func IsValid(field models.Field, value string) bool {
	if !field.IsEnum() {
		return true
	}
	canonical, ok := Canonicalize(field, value)
	return ok && canonical == value
}

// Values returns the canonical values of an enumeration field, in a stable
// order suitable for prompts and question phrasing. It returns nil for
// free-text fields.
func Values(field models.Field) []string {
	switch field {
	case models.FieldType:
		return []string{TypeBug, TypeTask, TypeStory, TypeEpic}
	case models.FieldPriority:
		return []string{PriorityLowest, PriorityLow, PriorityMedium, PriorityHigh, PriorityHighest}
	case models.FieldProject:
		names := make([]string, 0, len(projects))
		for _, p := range projects {
			names = append(names, p.Name)
		}
		return names
	}
	return nil
}

// ProjectKey returns the tracker-side key for a canonical project name.
func ProjectKey(name string) (string, bool) {
	for _, p := range projects {
		if p.Name == name {
			return p.Key, true
		}
	}
	return "", false
}

// Default returns the built-in default for an enumeration field. The
// second return is false for free-text fields, which have no default.
func Default(field models.Field) (string, bool) {
	switch field {
	case models.FieldType:
		return DefaultType, true
	case models.FieldPriority:
		return DefaultPriority, true
	case models.FieldProject:
		return DefaultProject, true
	}
	return "", false
}
