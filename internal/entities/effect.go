package entities

// EffectType tags the variants of the Effect union. The values match the
// authored directive types so compiled data stays readable next to its
// markdown source.
type EffectType string

const (
	EffectStatChange     EffectType = "STAT_CHANGE"
	EffectKeywordAdd     EffectType = "KEYWORD_ADD"
	EffectItemAdd        EffectType = "ITEM_ADD"
	EffectItemRemove     EffectType = "ITEM_REMOVE"
	EffectCombatModifier EffectType = "COMBAT_MOD"
)

// KeywordScope selects which keyword list a keyword effect or condition
// targets
type KeywordScope string

const (
	KeywordCurrent   KeywordScope = "attuale"
	KeywordPermanent KeywordScope = "permanente"
)

// CombatModDoubleDamage is the one recognized combat modifier key: the
// player's damage is doubled for the remainder of the active combat.
const CombatModDoubleDamage = "PARTNER_DAMAGE_DOUBLE"

// Effect is a tagged union of the state mutations a chapter applies on
// entry, in declaration order. Only the fields of the tagged variant are
// populated.
type Effect struct {
	Type EffectType `json:"type"`

	// EffectStatChange
	Stat  string `json:"stat,omitempty"`
	Delta int    `json:"delta,omitempty"`

	// EffectKeywordAdd
	KeywordScope KeywordScope `json:"keyword_scope,omitempty"`
	KeywordName  string       `json:"keyword_name,omitempty"`

	// EffectItemAdd / EffectItemRemove
	ItemName string   `json:"item_name,omitempty"`
	ItemType ItemType `json:"item_type,omitempty"`

	// EffectCombatModifier
	ModKey   string `json:"mod_key,omitempty"`
	ModValue string `json:"mod_value,omitempty"`

	// Raw preserves the authored details of directives the compiler did
	// not recognize, so new effect types degrade to a logged no-op
	// instead of breaking old engines.
	Raw string `json:"raw,omitempty"`
}
