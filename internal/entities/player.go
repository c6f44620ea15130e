package entities

import "strings"

// StartingGold is the canonical starting purse
const StartingGold = 5

// StartingLanguages returns the languages every character begins with
func StartingLanguages() []string {
	return []string{"Lingua Comune"}
}

// Keywords holds the narrative flags conditions test against. Current
// keywords live for the play session; permanent ones survive save/load.
type Keywords struct {
	Current   []string `json:"current"`
	Permanent []string `json:"permanent"`
}

// NewKeywords returns empty keyword lists
func NewKeywords() *Keywords {
	return &Keywords{Current: []string{}, Permanent: []string{}}
}

// Clone returns a deep copy of the keywords
func (k *Keywords) Clone() *Keywords {
	if k == nil {
		return nil
	}
	return &Keywords{
		Current:   append([]string{}, k.Current...),
		Permanent: append([]string{}, k.Permanent...),
	}
}

// Add inserts an uppercased keyword into the scoped list if not already
// present. Returns whether the keyword was actually inserted.
func (k *Keywords) Add(scope KeywordScope, name string) bool {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return false
	}

	var list *[]string
	switch scope {
	case KeywordCurrent:
		list = &k.Current
	case KeywordPermanent:
		list = &k.Permanent
	default:
		return false
	}

	for _, kw := range *list {
		if kw == upper {
			return false
		}
	}
	*list = append(*list, upper)
	return true
}

// Has reports membership of an uppercased keyword in the scoped list
func (k *Keywords) Has(scope KeywordScope, name string) bool {
	upper := strings.ToUpper(strings.TrimSpace(name))
	var list []string
	switch scope {
	case KeywordCurrent:
		list = k.Current
	case KeywordPermanent:
		list = k.Permanent
	}
	for _, kw := range list {
		if kw == upper {
			return true
		}
	}
	return false
}

// PlayerState is the single mutable root of a play session. Everything
// the engine and the resolvers touch hangs off it; nothing is ambient.
type PlayerState struct {
	Chapter   int        `json:"chapter"`
	Stats     *Stats     `json:"stats"`
	Languages []string   `json:"languages"`
	Gold      int        `json:"gold"`
	Inventory *Inventory `json:"inventory"`
	Keywords  *Keywords  `json:"keywords"`
	GameOver  bool       `json:"game_over"`

	// Active sub-interactions are transient: never persisted, cleared on
	// chapter entry and on load. At most one is set at a time.
	ActiveCombat     *CombatState `json:"-"`
	ActiveSkillCheck *SkillCheck  `json:"-"`
	CombatLog        []string     `json:"-"`
}

// NewPlayerState returns the pre-creation sentinel state: chapter 0, no
// stats. Character creation populates it.
func NewPlayerState() *PlayerState {
	return &PlayerState{}
}

// Started reports whether character creation has been completed
func (p *PlayerState) Started() bool {
	return p != nil && p.Stats != nil
}

// KnowsLanguage reports whether the player knows a language, matched
// case-insensitively and exactly
func (p *PlayerState) KnowsLanguage(name string) bool {
	for _, lang := range p.Languages {
		if strings.EqualFold(lang, name) {
			return true
		}
	}
	return false
}

// AdjustGold adds delta to the purse, clamped to [0, MaxGold]
func (p *PlayerState) AdjustGold(delta int) {
	p.Gold += delta
	if p.Gold < 0 {
		p.Gold = 0
	}
	if p.Gold > MaxGold {
		p.Gold = MaxGold
	}
}

// ApplyStatChange resolves a stat name from authored content and applies
// a delta. Gold is addressed as a stat ("moneteOro") by the content even
// though it lives outside Stats. Returns whether the name resolved.
func (p *PlayerState) ApplyStatChange(name string, delta int) bool {
	key := NormalizeStatName(name)
	if key == "moneteoro" || key == "oro" {
		p.AdjustGold(delta)
		return true
	}
	return p.Stats.AdjustStat(name, delta)
}

// ClearSubInteractions drops any active combat or skill check and the
// transient combat log
func (p *PlayerState) ClearSubInteractions() {
	p.ActiveCombat = nil
	p.ActiveSkillCheck = nil
	p.CombatLog = nil
}

// AppendCombatLog records a combat log line for the current combat
func (p *PlayerState) AppendCombatLog(line string) {
	p.CombatLog = append(p.CombatLog, line)
}

// Clone returns a deep copy of the persistent parts of the state.
// Active sub-interactions are transient and intentionally not copied.
func (p *PlayerState) Clone() *PlayerState {
	if p == nil {
		return nil
	}
	return &PlayerState{
		Chapter:   p.Chapter,
		Stats:     p.Stats.Clone(),
		Languages: append([]string{}, p.Languages...),
		Gold:      p.Gold,
		Inventory: p.Inventory.Clone(),
		Keywords:  p.Keywords.Clone(),
		GameOver:  p.GameOver,
	}
}

// ValidateLoaded checks the structural integrity of a deserialized save:
// a non-zero chapter and every required sub-object must be present.
func (p *PlayerState) ValidateLoaded() bool {
	if p == nil || p.Chapter == 0 {
		return false
	}
	if p.Stats == nil || p.Inventory == nil || p.Languages == nil {
		return false
	}
	if p.Keywords == nil || p.Keywords.Current == nil || p.Keywords.Permanent == nil {
		return false
	}
	return true
}
