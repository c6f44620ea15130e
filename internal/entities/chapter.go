package entities

// Chapter is one unit of narrative content, addressable by integer id.
// Chapters are immutable once compiled; the engine only ever reads them.
type Chapter struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Text         string      `json:"text"`
	Images       []Image     `json:"images"`
	Choices      []Choice    `json:"choices"`
	Effects      []Effect    `json:"effects"`
	ItemsOffered []ItemOffer `json:"items_offered,omitempty"`
	Combat       *CombatBlock `json:"combat,omitempty"`
	SkillCheck   *SkillCheck  `json:"skill_check,omitempty"`
}

// Image is a chapter illustration
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Choice is a navigation option to another chapter, optionally gated by a
// condition
type Choice struct {
	Text      string     `json:"text"`
	Target    int        `json:"target"`
	Condition *Condition `json:"condition,omitempty"`
}

// ItemOffer is an item the chapter lets the player pick up
type ItemOffer struct {
	Name string   `json:"name"`
	Type ItemType `json:"type"`
}

// CombatBlock is the declarative combat a chapter forces. It is never
// mutated: entering the chapter deep-copies it into a CombatState.
type CombatBlock struct {
	Enemies        []Enemy `json:"enemies"`
	VictoryChapter int     `json:"victory_chapter,omitempty"` // 0 = next sequential chapter
}

// Enemy is a combat opponent
type Enemy struct {
	Name              string `json:"name"`
	Combativity       int    `json:"combativity"`
	Resistance        int    `json:"resistance"`
	InitialResistance int    `json:"initial_resistance"`
}

// SkillCheck is a single-roll test against a target value, branching to a
// success or failure chapter
type SkillCheck struct {
	Skill          string `json:"skill"`
	Target         int    `json:"target"`
	SuccessChapter int    `json:"success_chapter"`
	FailureChapter int    `json:"failure_chapter"`
}

// CombatTurn marks whose turn it is in an active combat
type CombatTurn string

const (
	TurnPlayer CombatTurn = "player"
	TurnEnemy  CombatTurn = "enemy"
)

// CombatState is the session copy of a chapter's combat block. It lives
// only while the combat runs and is discarded when it ends or another
// chapter loads.
type CombatState struct {
	Enemies            []*Enemy
	VictoryChapter     int
	Turn               CombatTurn
	DoublePlayerDamage bool
}

// NewCombatState deep-copies a chapter's combat block into a live combat.
// Every enemy gets an initial-resistance baseline equal to its starting
// resistance, and the player moves first.
func NewCombatState(block *CombatBlock) *CombatState {
	state := &CombatState{
		Enemies:        make([]*Enemy, 0, len(block.Enemies)),
		VictoryChapter: block.VictoryChapter,
		Turn:           TurnPlayer,
	}
	for _, e := range block.Enemies {
		enemy := e
		if enemy.InitialResistance == 0 {
			enemy.InitialResistance = enemy.Resistance
		}
		state.Enemies = append(state.Enemies, &enemy)
	}
	return state
}

// FirstAliveEnemy returns the first enemy with resistance left, or nil
func (c *CombatState) FirstAliveEnemy() *Enemy {
	for _, e := range c.Enemies {
		if e.Resistance > 0 {
			return e
		}
	}
	return nil
}

// AllDefeated reports whether every enemy is at zero resistance or below
func (c *CombatState) AllDefeated() bool {
	return c.FirstAliveEnemy() == nil
}
