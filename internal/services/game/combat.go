package game

import (
	"context"
	"fmt"
	"log"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

// Combat damage rules. A natural 2 always misses, a natural 12 always
// deals at least minCriticalDamage, even against a shield.
const (
	shieldDamageReduction = 2
	minCriticalDamage     = 2
)

// CombatRound is the outcome of one combat phase, ready for rendering
type CombatRound struct {
	Log         []string
	Turn        entities.CombatTurn
	Victory     bool
	Defeat      bool
	NextChapter int
}

// PlayerAttack resolves the player phase: a 2d6 roll against the first
// enemy still standing
func (s *service) PlayerAttack(ctx context.Context, userID string, state *entities.PlayerState) (*CombatRound, error) {
	combat, err := activeCombat(state, entities.TurnPlayer)
	if err != nil {
		return nil, err
	}

	target := combat.FirstAliveEnemy()
	if target == nil {
		return nil, apperr.FailedPrecondition("no enemies left to attack")
	}

	roll, err := s.roller.Roll(2, 6, 0)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to roll attack dice")
	}

	round := &CombatRound{Turn: entities.TurnEnemy}
	logLine(state, round, "Tiri i dadi: %d", roll.Total)

	switch {
	case roll.IsMinimum:
		logLine(state, round, "Un 2! Il tuo colpo va a vuoto.")
	default:
		// Doubling applies to the raw differential; a doubled natural 12
		// still bottoms out at the critical minimum
		damage := roll.Total + state.Stats.Combativity - target.Combativity
		if combat.DoublePlayerDamage {
			damage *= 2
		}
		if roll.IsMaximum && damage < minCriticalDamage {
			damage = minCriticalDamage
		}
		if damage < 0 {
			damage = 0
		}

		if damage > 0 {
			target.Resistance -= damage
			logLine(state, round, "Colpisci %s e infliggi %d danni!", target.Name, damage)
		} else {
			logLine(state, round, "Colpisci %s ma non infliggi danni.", target.Name)
		}
		if target.Resistance <= 0 {
			target.Resistance = 0
			logLine(state, round, "%s è stato sconfitto!", target.Name)
		}
	}

	if combat.AllDefeated() {
		round.Victory = true
		round.Turn = entities.TurnPlayer
		round.NextChapter = combat.VictoryChapter
		if round.NextChapter == 0 {
			round.NextChapter = state.Chapter + 1
		}
		logLine(state, round, "Hai vinto il combattimento!")
		state.ActiveCombat = nil
		log.Printf("combat won by user %s, continuing at chapter %d", userID, round.NextChapter)
		return round, nil
	}

	combat.Turn = entities.TurnEnemy
	return round, nil
}

// EnemyTurn resolves the enemy phase: every enemy still standing attacks
// in order
func (s *service) EnemyTurn(ctx context.Context, userID string, state *entities.PlayerState) (*CombatRound, error) {
	combat, err := activeCombat(state, entities.TurnEnemy)
	if err != nil {
		return nil, err
	}

	round := &CombatRound{Turn: entities.TurnPlayer}

	for _, enemy := range combat.Enemies {
		if enemy.Resistance <= 0 {
			continue
		}

		roll, err := s.roller.Roll(2, 6, 0)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to roll attack dice")
		}

		logLine(state, round, "%s attacca e tira: %d", enemy.Name, roll.Total)

		if roll.IsMinimum {
			logLine(state, round, "Un 2! L'attacco di %s va a vuoto.", enemy.Name)
			continue
		}

		damage := roll.Total + enemy.Combativity - state.Stats.Combativity
		if state.Inventory.HasWornContaining("scudo") {
			damage -= shieldDamageReduction
			logLine(state, round, "Il tuo scudo assorbe parte del colpo.")
		}
		if roll.IsMaximum && damage < minCriticalDamage {
			damage = minCriticalDamage
		}
		if damage <= 0 {
			logLine(state, round, "L'attacco di %s non ti scalfisce.", enemy.Name)
			continue
		}

		state.Stats.Endurance -= damage
		logLine(state, round, "%s ti colpisce e subisci %d danni!", enemy.Name, damage)

		if state.Stats.Endurance > 0 {
			continue
		}

		// A worn leather corset absorbs the killing blow once, then is
		// destroyed
		if state.Inventory.HasWornContaining("corpetto") {
			if removed, err := state.Inventory.RemoveItem("Corpetto"); err == nil {
				state.Stats.Endurance = 1
				logLine(state, round, "Il tuo %s assorbe il colpo mortale e va in pezzi!", entities.ItemBaseName(removed))
				continue
			}
		}

		state.Stats.Endurance = 0
		state.GameOver = true
		state.ActiveCombat = nil
		round.Defeat = true
		logLine(state, round, "Sei stato sconfitto in combattimento.")
		log.Printf("combat lost by user %s at chapter %d", userID, state.Chapter)
		return round, nil
	}

	combat.Turn = entities.TurnPlayer
	return round, nil
}

// activeCombat validates the combat preconditions shared by both phases
func activeCombat(state *entities.PlayerState, turn entities.CombatTurn) (*entities.CombatState, error) {
	if state == nil || !state.Started() {
		return nil, apperr.FailedPrecondition("character has not been created yet")
	}
	if state.GameOver {
		return nil, apperr.FailedPrecondition("the game is over")
	}
	if state.ActiveCombat == nil {
		return nil, apperr.FailedPrecondition("no combat is active")
	}
	if state.ActiveCombat.Turn != turn {
		return nil, apperr.FailedPreconditionf("it is not the %s turn", turn)
	}
	return state.ActiveCombat, nil
}

// logLine appends a formatted line to both the round log and the combat
// log carried by the state
func logLine(state *entities.PlayerState, round *CombatRound, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	round.Log = append(round.Log, line)
	state.AppendCombatLog(line)
}
