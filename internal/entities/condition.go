package entities

import (
	"regexp"
	"strconv"
	"strings"
)

// ConditionKind tags the variants of a parsed choice condition
type ConditionKind string

const (
	ConditionHasItem          ConditionKind = "has_item"
	ConditionKnowsLanguage    ConditionKind = "knows_language"
	ConditionKeywordCurrent   ConditionKind = "keyword_current"
	ConditionKeywordPermanent ConditionKind = "keyword_permanent"
	ConditionStatCompare      ConditionKind = "stat_compare"

	// ConditionUnknown carries condition text the parser did not
	// recognize. It evaluates to true with a logged warning, so a typo
	// unlocks a choice instead of dead-ending the story.
	ConditionUnknown ConditionKind = "unknown"
)

// Condition is the parsed form of an authored condition string. The
// surface syntax stays free text in the markdown; the compiler parses it
// once so the engine never pattern-matches prose at runtime.
type Condition struct {
	Kind  ConditionKind `json:"kind"`
	Name  string        `json:"name,omitempty"`
	Op    string        `json:"op,omitempty"`
	Value int           `json:"value,omitempty"`
	Raw   string        `json:"raw"`
}

var statCompareRe = regexp.MustCompile(`^(\w+)\s*([><=!]+)\s*(\d+)$`)

// ParseCondition parses an authored condition string. It never fails:
// unrecognized text becomes a ConditionUnknown.
func ParseCondition(text string) *Condition {
	raw := strings.TrimSpace(text)
	lower := strings.ToLower(raw)

	if name, ok := strings.CutPrefix(lower, "possiedi "); ok {
		return &Condition{Kind: ConditionHasItem, Name: strings.TrimSpace(name), Raw: raw}
	}
	if name, ok := strings.CutPrefix(lower, "conosci "); ok {
		return &Condition{Kind: ConditionKnowsLanguage, Name: strings.TrimSpace(name), Raw: raw}
	}
	if name, ok := strings.CutPrefix(lower, "comprendi "); ok {
		return &Condition{Kind: ConditionKnowsLanguage, Name: strings.TrimSpace(name), Raw: raw}
	}
	if name, ok := strings.CutPrefix(lower, "keyword attuale "); ok {
		return &Condition{Kind: ConditionKeywordCurrent, Name: strings.ToUpper(strings.TrimSpace(name)), Raw: raw}
	}
	if name, ok := strings.CutPrefix(lower, "keyword permanente "); ok {
		return &Condition{Kind: ConditionKeywordPermanent, Name: strings.ToUpper(strings.TrimSpace(name)), Raw: raw}
	}

	if m := statCompareRe.FindStringSubmatch(lower); m != nil {
		value, err := strconv.Atoi(m[3])
		if err == nil {
			return &Condition{
				Kind:  ConditionStatCompare,
				Name:  m[1],
				Op:    m[2],
				Value: value,
				Raw:   raw,
			}
		}
	}

	return &Condition{Kind: ConditionUnknown, Raw: raw}
}
