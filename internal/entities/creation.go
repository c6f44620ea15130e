package entities

import (
	apperr "github.com/librogame/passomorto/internal/errors"
)

// Point-spend rules: every spend costs one experience point. A point
// buys +1 combativity or +1 on a single generic skill (at most one point
// per stat), +3 endurance, or one additional language.
const (
	MaxPointsPerStat  = 1
	EnduranceGainPE   = 3
	MaxExtraLanguages = 1
)

// spendableStats are the normalized stat keys points may be spent on
var spendableStats = map[string]bool{
	"combattivita":     true,
	"resistenza":       true,
	"mira":             true,
	"movimento":        true,
	"sotterfugio":      true,
	"scassinare":       true,
	"percezione":       true,
	"conoscenzaarcana": true,
}

// CreationDraft is the transient working state of character creation. It
// holds a copy of the base stats that spend/refund operations mutate; the
// real PlayerState is only touched when the draft is confirmed.
type CreationDraft struct {
	Stats *Stats

	// Spent tracks experience points per normalized stat key
	Spent map[string]int

	// Language is the chosen additional language, "" when none
	Language string
}

// NewCreationDraft starts a draft from the canonical base stats
func NewCreationDraft() *CreationDraft {
	return &CreationDraft{
		Stats: BaseStats(),
		Spent: make(map[string]int),
	}
}

// Pool returns the total experience points available to spend
func (d *CreationDraft) Pool() int {
	return BaseExperiencePoints
}

// SpentTotal returns the experience points committed so far, the chosen
// language included
func (d *CreationDraft) SpentTotal() int {
	total := 0
	for _, n := range d.Spent {
		total += n
	}
	if d.Language != "" {
		total += 1
	}
	return total
}

// Remaining returns the unspent experience points
func (d *CreationDraft) Remaining() int {
	return d.Pool() - d.SpentTotal()
}

// SpendPoint spends one experience point on a stat: +3 endurance (the
// endurance cap rises with it) or +1 anything else
func (d *CreationDraft) SpendPoint(statName string) error {
	key := NormalizeStatName(statName)
	if !spendableStats[key] {
		return apperr.InvalidArgumentf("cannot spend points on '%s'", statName)
	}
	if d.Remaining() <= 0 {
		return apperr.Validation("no experience points left")
	}
	if d.Spent[key] >= MaxPointsPerStat {
		return apperr.Validationf("at most %d point on %s", MaxPointsPerStat, statName)
	}

	if key == "resistenza" {
		d.Stats.Endurance += EnduranceGainPE
		d.Stats.EnduranceMax += EnduranceGainPE
	} else {
		d.Stats.AdjustStat(statName, 1)
	}
	d.Spent[key]++
	return nil
}

// RefundPoint undoes a SpendPoint on the same stat
func (d *CreationDraft) RefundPoint(statName string) error {
	key := NormalizeStatName(statName)
	if !spendableStats[key] {
		return apperr.InvalidArgumentf("cannot refund points on '%s'", statName)
	}
	if d.Spent[key] <= 0 {
		return apperr.Validationf("no points spent on %s", statName)
	}

	if key == "resistenza" {
		d.Stats.Endurance -= EnduranceGainPE
		d.Stats.EnduranceMax -= EnduranceGainPE
	} else {
		d.Stats.AdjustStat(statName, -1)
	}
	d.Spent[key]--
	return nil
}

// SelectLanguage spends one experience point on an additional language
func (d *CreationDraft) SelectLanguage(name string) error {
	if d.Language != "" {
		return apperr.Validationf("at most %d additional language", MaxExtraLanguages)
	}
	if d.Remaining() <= 0 {
		return apperr.Validation("no experience points left")
	}
	d.Language = name
	return nil
}

// ClearLanguage refunds the language selection
func (d *CreationDraft) ClearLanguage() {
	d.Language = ""
}

// Confirmable reports whether the pool is exactly exhausted. Partial
// spending is not allowed through.
func (d *CreationDraft) Confirmable() bool {
	return d.SpentTotal() == d.Pool()
}
