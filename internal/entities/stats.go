package entities

import "strings"

// Base values for a freshly created character, before experience points
// are spent.
const (
	BaseCombativity      = 5
	BaseEndurance        = 30
	BaseExperiencePoints = 3

	// MaxGold is the hard cap on carried gold coins
	MaxGold = 30
)

// Stats holds the player's characteristics. Field names are English; the
// authored content addresses them by their Italian names (see ResolveStat).
type Stats struct {
	Combativity      int `json:"combativity"`
	Endurance        int `json:"endurance"`
	EnduranceMax     int `json:"endurance_max"`
	Aim              int `json:"aim"`
	Movement         int `json:"movement"`
	Stealth          int `json:"stealth"`
	Lockpicking      int `json:"lockpicking"`
	Perception       int `json:"perception"`
	ArcaneKnowledge  int `json:"arcane_knowledge"`
	ExperiencePoints int `json:"experience_points"`
}

// BaseStats returns the canonical starting statistics
func BaseStats() *Stats {
	return &Stats{
		Combativity:      BaseCombativity,
		Endurance:        BaseEndurance,
		EnduranceMax:     BaseEndurance,
		ExperiencePoints: BaseExperiencePoints,
	}
}

// Clone returns a copy of the stats
func (s *Stats) Clone() *Stats {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// NormalizeStatName lowercases a stat name and strips internal spacing so
// that "Conoscenza Arcana", "conoscenzaArcana" and "conoscenza arcana"
// all resolve to the same key.
func NormalizeStatName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

// field maps a normalized Italian stat name to the backing field
func (s *Stats) field(key string) *int {
	switch key {
	case "combattivita":
		return &s.Combativity
	case "resistenza":
		return &s.Endurance
	case "resistenzamax":
		return &s.EnduranceMax
	case "mira":
		return &s.Aim
	case "movimento":
		return &s.Movement
	case "sotterfugio":
		return &s.Stealth
	case "scassinare":
		return &s.Lockpicking
	case "percezione":
		return &s.Perception
	case "conoscenzaarcana":
		return &s.ArcaneKnowledge
	case "puntiesperienza":
		return &s.ExperiencePoints
	}
	return nil
}

// ResolveStat returns the current value of the stat with the given
// authored (Italian) name, matched case-insensitively
func (s *Stats) ResolveStat(name string) (int, bool) {
	if s == nil {
		return 0, false
	}
	if f := s.field(NormalizeStatName(name)); f != nil {
		return *f, true
	}
	return 0, false
}

// AdjustStat adds delta to the named stat. Endurance is clamped to
// [0, EnduranceMax]. Returns false if the name does not resolve.
func (s *Stats) AdjustStat(name string, delta int) bool {
	if s == nil {
		return false
	}
	key := NormalizeStatName(name)
	f := s.field(key)
	if f == nil {
		return false
	}
	*f += delta
	if key == "resistenza" {
		s.ClampEndurance()
	}
	return true
}

// ClampEndurance forces endurance into [0, EnduranceMax]
func (s *Stats) ClampEndurance() {
	if s.Endurance > s.EnduranceMax {
		s.Endurance = s.EnduranceMax
	}
	if s.Endurance < 0 {
		s.Endurance = 0
	}
}

// SkillValue resolves a skill-check skill name to a stat value. The match
// is fuzzy: the authored skill name only has to contain one of the known
// skill keys ("Prova di Percezione" resolves to Perception). Unknown
// skill names contribute 0.
func (s *Stats) SkillValue(skillName string) int {
	if s == nil {
		return 0
	}
	lower := strings.ToLower(skillName)
	skills := []struct {
		key   string
		value int
	}{
		{"conoscenza arcana", s.ArcaneKnowledge},
		{"mira", s.Aim},
		{"movimento", s.Movement},
		{"sotterfugio", s.Stealth},
		{"scassinare", s.Lockpicking},
		{"percezione", s.Perception},
	}
	for _, sk := range skills {
		if strings.Contains(lower, sk.key) {
			return sk.value
		}
	}
	return 0
}
