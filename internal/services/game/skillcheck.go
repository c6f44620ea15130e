package game

import (
	"context"
	"log"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

// SkillCheckResult is the outcome of a resolved skill check
type SkillCheckResult struct {
	Rolls       []int
	SkillName   string
	SkillValue  int
	Total       int
	Target      int
	Success     bool
	NextChapter int
}

// RollSkillCheck resolves the active skill check: 2d6 plus the matched
// skill value against the target. The check is consumed either way.
func (s *service) RollSkillCheck(ctx context.Context, userID string, state *entities.PlayerState) (*SkillCheckResult, error) {
	if state == nil || !state.Started() {
		return nil, apperr.FailedPrecondition("character has not been created yet")
	}
	if state.GameOver {
		return nil, apperr.FailedPrecondition("the game is over")
	}
	check := state.ActiveSkillCheck
	if check == nil {
		return nil, apperr.FailedPrecondition("no skill check is active")
	}

	skillValue := state.Stats.SkillValue(check.Skill)
	roll, err := s.roller.Roll(2, 6, skillValue)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to roll skill check dice")
	}

	result := &SkillCheckResult{
		Rolls:      roll.Rolls,
		SkillName:  check.Skill,
		SkillValue: skillValue,
		Total:      roll.Total,
		Target:     check.Target,
		Success:    roll.Total >= check.Target,
	}
	if result.Success {
		result.NextChapter = check.SuccessChapter
	} else {
		result.NextChapter = check.FailureChapter
	}

	state.ActiveSkillCheck = nil
	log.Printf("skill check '%s' for user %s: %d vs %d -> chapter %d",
		check.Skill, userID, result.Total, result.Target, result.NextChapter)

	return result, nil
}
