package dice

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
)

// RollResult holds the outcome of a dice roll. The gamebook rules only
// care about 2d6, but the core roller stays generic.
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int

	// IsMinimum is true when every die came up 1 (a natural 2 on 2d6,
	// which the combat rules treat as an automatic miss)
	IsMinimum bool

	// IsMaximum is true when every die came up at its highest face (a
	// natural 12 on 2d6, which guarantees at least 2 damage)
	IsMaximum bool
}

// Roll rolls count dice with the given sides and adds a bonus
func Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		total += roll
		out[i] = roll
	}

	log.Println("Rolling", count, "d", sides, ":", out, "total:", total)

	result := &RollResult{
		Total:    total + bonus,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: total,
	}
	result.IsMinimum = total == count
	result.IsMaximum = total == count*sides

	return result, nil
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	if r.Bonus != 0 {
		return fmt.Sprintf("%d : %s%+d", r.Total, compact, r.Bonus)
	}
	return fmt.Sprintf("%d : %s", r.Total, compact)
}
