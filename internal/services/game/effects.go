package game

import (
	"log"

	"github.com/librogame/passomorto/internal/entities"
)

// applyEffect applies one chapter effect to the player state. Effects
// never fail the chapter transition: anything invalid is logged and
// skipped so new content degrades gracefully on old engines.
func (s *service) applyEffect(state *entities.PlayerState, effect entities.Effect) {
	if !state.Started() {
		log.Printf("cannot apply effect %s: state not ready", effect.Type)
		return
	}

	switch effect.Type {
	case entities.EffectStatChange:
		if effect.Stat == "" {
			log.Printf("invalid STAT_CHANGE effect: %q", effect.Raw)
			return
		}
		if !state.ApplyStatChange(effect.Stat, effect.Delta) {
			log.Printf("STAT_CHANGE: unknown stat %q", effect.Stat)
		}

	case entities.EffectKeywordAdd:
		if !state.Keywords.Add(effect.KeywordScope, effect.KeywordName) {
			log.Printf("KEYWORD_ADD: keyword %q (%s) not added", effect.KeywordName, effect.KeywordScope)
		}

	case entities.EffectItemAdd:
		if err := state.Inventory.AddItem(effect.ItemName, effect.ItemType); err != nil {
			log.Printf("ITEM_ADD: cannot add %q: %v", effect.ItemName, err)
		}

	case entities.EffectItemRemove:
		if _, err := state.Inventory.RemoveItem(effect.ItemName); err != nil {
			log.Printf("ITEM_REMOVE: cannot remove %q: %v", effect.ItemName, err)
		}

	case entities.EffectCombatModifier:
		if effect.ModKey == entities.CombatModDoubleDamage && effect.ModValue == "true" {
			if state.ActiveCombat != nil {
				state.ActiveCombat.DoublePlayerDamage = true
			} else {
				log.Printf("COMBAT_MOD outside of combat, ignored")
			}
			return
		}
		log.Printf("unrecognized combat modifier %q=%q, ignored", effect.ModKey, effect.ModValue)

	default:
		log.Printf("unknown effect type %q, ignored", effect.Type)
	}
}
