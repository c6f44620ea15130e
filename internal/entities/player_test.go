package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librogame/passomorto/internal/entities"
)

func newStartedState() *entities.PlayerState {
	return &entities.PlayerState{
		Chapter:   1,
		Stats:     entities.BaseStats(),
		Languages: entities.StartingLanguages(),
		Gold:      entities.StartingGold,
		Inventory: entities.StartingInventory(),
		Keywords:  entities.NewKeywords(),
	}
}

func TestPlayerState_ApplyStatChange(t *testing.T) {
	tests := []struct {
		name  string
		stat  string
		delta int
		check func(t *testing.T, state *entities.PlayerState)
	}{
		{
			name:  "endurance damage",
			stat:  "resistenza",
			delta: -5,
			check: func(t *testing.T, state *entities.PlayerState) {
				assert.Equal(t, entities.BaseEndurance-5, state.Stats.Endurance)
			},
		},
		{
			name:  "healing clamps at the cap",
			stat:  "resistenza",
			delta: 99,
			check: func(t *testing.T, state *entities.PlayerState) {
				assert.Equal(t, state.Stats.EnduranceMax, state.Stats.Endurance)
			},
		},
		{
			name:  "gold is addressed as a stat",
			stat:  "moneteOro",
			delta: 10,
			check: func(t *testing.T, state *entities.PlayerState) {
				assert.Equal(t, entities.StartingGold+10, state.Gold)
			},
		},
		{
			name:  "gold clamps at the cap",
			stat:  "moneteOro",
			delta: 100,
			check: func(t *testing.T, state *entities.PlayerState) {
				assert.Equal(t, entities.MaxGold, state.Gold)
			},
		},
		{
			name:  "gold never goes negative",
			stat:  "oro",
			delta: -100,
			check: func(t *testing.T, state *entities.PlayerState) {
				assert.Equal(t, 0, state.Gold)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newStartedState()
			require.True(t, state.ApplyStatChange(tt.stat, tt.delta))
			tt.check(t, state)
		})
	}

	t.Run("unknown stat resolves false", func(t *testing.T) {
		state := newStartedState()
		assert.False(t, state.ApplyStatChange("fortuna", 1))
	})
}

func TestStats_SkillValue_FuzzyMatch(t *testing.T) {
	stats := entities.BaseStats()
	stats.Perception = 2
	stats.ArcaneKnowledge = 1

	assert.Equal(t, 2, stats.SkillValue("Prova di Percezione"))
	assert.Equal(t, 1, stats.SkillValue("conoscenza arcana"))
	assert.Equal(t, 0, stats.SkillValue("equitazione"))
}

func TestKeywords_Add(t *testing.T) {
	kw := entities.NewKeywords()

	assert.True(t, kw.Add(entities.KeywordCurrent, "tradimento"))
	assert.False(t, kw.Add(entities.KeywordCurrent, "TRADIMENTO"), "duplicates are rejected")
	assert.True(t, kw.Has(entities.KeywordCurrent, "Tradimento"))
	assert.False(t, kw.Has(entities.KeywordPermanent, "TRADIMENTO"))
}

func TestPlayerState_Clone_DropsTransients(t *testing.T) {
	state := newStartedState()
	state.ActiveCombat = &entities.CombatState{Turn: entities.TurnPlayer}
	state.CombatLog = []string{"una riga"}

	clone := state.Clone()

	assert.Nil(t, clone.ActiveCombat)
	assert.Nil(t, clone.CombatLog)
	assert.Equal(t, state.Chapter, clone.Chapter)

	clone.Inventory.Weapons[0] = "modificata"
	assert.NotEqual(t, clone.Inventory.Weapons[0], state.Inventory.Weapons[0], "deep copy")
}

func TestPlayerState_ValidateLoaded(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(state *entities.PlayerState)
		want   bool
	}{
		{
			name:   "complete state is valid",
			mutate: func(state *entities.PlayerState) {},
			want:   true,
		},
		{
			name:   "chapter zero is pre-creation",
			mutate: func(state *entities.PlayerState) { state.Chapter = 0 },
			want:   false,
		},
		{
			name:   "missing stats",
			mutate: func(state *entities.PlayerState) { state.Stats = nil },
			want:   false,
		},
		{
			name:   "missing inventory",
			mutate: func(state *entities.PlayerState) { state.Inventory = nil },
			want:   false,
		},
		{
			name:   "keyword lists must both exist",
			mutate: func(state *entities.PlayerState) { state.Keywords.Permanent = nil },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newStartedState()
			tt.mutate(state)
			assert.Equal(t, tt.want, state.ValidateLoaded())
		})
	}
}

func TestNewCombatState(t *testing.T) {
	block := &entities.CombatBlock{
		Enemies: []entities.Enemy{
			{Name: "Orco", Combativity: 4, Resistance: 12},
			{Name: "Goblin", Combativity: 2, Resistance: 6, InitialResistance: 6},
		},
		VictoryChapter: 43,
	}

	combat := entities.NewCombatState(block)

	assert.Equal(t, entities.TurnPlayer, combat.Turn)
	assert.Equal(t, 43, combat.VictoryChapter)
	require.Len(t, combat.Enemies, 2)
	assert.Equal(t, 12, combat.Enemies[0].InitialResistance, "baseline defaults to starting resistance")

	// The block itself must stay untouched
	combat.Enemies[0].Resistance = 0
	assert.Equal(t, 12, block.Enemies[0].Resistance)
}
