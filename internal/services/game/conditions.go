package game

import (
	"log"

	"github.com/librogame/passomorto/internal/entities"
)

// evaluateCondition evaluates a parsed choice condition against the
// player state. A nil condition is unconditionally true.
//
// Unknown conditions also evaluate true: an authoring typo unlocks the
// choice (with a logged warning) instead of dead-ending the story.
func (s *service) evaluateCondition(state *entities.PlayerState, cond *entities.Condition) bool {
	if cond == nil {
		return true
	}

	switch cond.Kind {
	case entities.ConditionHasItem:
		return state.Inventory.Has(cond.Name)

	case entities.ConditionKnowsLanguage:
		return state.KnowsLanguage(cond.Name)

	case entities.ConditionKeywordCurrent:
		return state.Keywords.Has(entities.KeywordCurrent, cond.Name)

	case entities.ConditionKeywordPermanent:
		return state.Keywords.Has(entities.KeywordPermanent, cond.Name)

	case entities.ConditionStatCompare:
		value, ok := state.Stats.ResolveStat(cond.Name)
		if !ok {
			log.Printf("condition %q references unknown stat, treating as false", cond.Raw)
			return false
		}
		return compareStat(value, cond.Op, cond.Value)

	default:
		log.Printf("unrecognized condition %q, assuming true", cond.Raw)
		return true
	}
}

func compareStat(current int, op string, target int) bool {
	switch op {
	case ">":
		return current > target
	case "<":
		return current < target
	case ">=":
		return current >= target
	case "<=":
		return current <= target
	case "==", "=":
		return current == target
	case "!=":
		return current != target
	}
	return false
}
