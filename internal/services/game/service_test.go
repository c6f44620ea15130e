package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/librogame/passomorto/internal/dice/mock"
	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
	"github.com/librogame/passomorto/internal/repositories/chapters"
	"github.com/librogame/passomorto/internal/repositories/saves"
	"github.com/librogame/passomorto/internal/services/game"
	"github.com/librogame/passomorto/internal/testutils"
)

type fixture struct {
	service  game.Service
	saves    saves.Repository
	roller   *mockdice.ManualMockRoller
	chapters map[int]*entities.Chapter
}

func newFixture(t *testing.T, chapterList ...*entities.Chapter) *fixture {
	t.Helper()

	chapterMap := testutils.CreateTestChapterMap(chapterList...)
	saveRepo := saves.NewInMemoryRepository()
	roller := mockdice.NewManualMockRoller()

	svc := game.NewService(&game.ServiceConfig{
		ChapterRepository: chapters.NewInMemoryRepository(chapterMap),
		SaveRepository:    saveRepo,
		Roller:            roller,
	})

	return &fixture{service: svc, saves: saveRepo, roller: roller, chapters: chapterMap}
}

func TestDisplayChapter(t *testing.T) {
	ctx := context.Background()

	t.Run("renders text, offers and choices", func(t *testing.T) {
		f := newFixture(t, &entities.Chapter{
			ID:    5,
			Title: "Il Bivio",
			Text:  "Due sentieri si aprono davanti a te.",
			ItemsOffered: []entities.ItemOffer{
				{Name: "Corda", Type: entities.ItemTypeGeneric},
			},
			Choices: []entities.Choice{
				{Text: "Vai a destra", Target: 6},
				{Text: "Vai a sinistra", Target: 7},
			},
		})
		state := testutils.CreateTestPlayerState()

		view, err := f.service.DisplayChapter(ctx, "user-1", state, 5)
		require.NoError(t, err)

		assert.Equal(t, 5, state.Chapter)
		assert.Equal(t, "Il Bivio", view.Title)
		require.Len(t, view.ItemsOffered, 1)
		assert.True(t, view.ItemsOffered[0].CanTake)
		assert.Len(t, view.Choices, 2)
		assert.False(t, view.NoActions)
	})

	t.Run("applies effects on entry", func(t *testing.T) {
		f := newFixture(t, &entities.Chapter{
			ID:   8,
			Text: "Una freccia ti sfiora.",
			Effects: []entities.Effect{
				{Type: entities.EffectStatChange, Stat: "resistenza", Delta: -4},
				{Type: entities.EffectKeywordAdd, KeywordScope: entities.KeywordPermanent, KeywordName: "FERITO"},
				{Type: entities.EffectItemAdd, ItemName: "Mappa", ItemType: entities.ItemTypeGeneric},
			},
			Choices: []entities.Choice{{Text: "Avanti", Target: 9}},
		})
		state := testutils.CreateTestPlayerState()

		_, err := f.service.DisplayChapter(ctx, "user-1", state, 8)
		require.NoError(t, err)

		assert.Equal(t, entities.BaseEndurance-4, state.Stats.Endurance)
		assert.True(t, state.Keywords.Has(entities.KeywordPermanent, "FERITO"))
		assert.True(t, state.Inventory.Has("Mappa"))
	})

	t.Run("filters choices by condition", func(t *testing.T) {
		f := newFixture(t, &entities.Chapter{
			ID:   20,
			Text: "Una porta chiusa.",
			Choices: []entities.Choice{
				{Text: "Forza la porta", Target: 21, Condition: entities.ParseCondition("possiedi piede di porco")},
				{Text: "Bussa", Target: 22},
				{Text: "Parla in elfico", Target: 23, Condition: entities.ParseCondition("conosci sindarin")},
				{Text: "Istinto", Target: 24, Condition: entities.ParseCondition("percezione >= 1")},
				{Text: "Refuso", Target: 25, Condition: entities.ParseCondition("frase senza senso")},
			},
		})
		state := testutils.CreateTestPlayerState()
		state.Languages = append(state.Languages, "Sindarin")

		view, err := f.service.DisplayChapter(ctx, "user-1", state, 20)
		require.NoError(t, err)

		targets := make([]int, 0, len(view.Choices))
		for _, c := range view.Choices {
			targets = append(targets, c.Target)
		}
		// No crowbar, knows Sindarin, perception 0, unknown passes
		assert.Equal(t, []int{22, 23, 25}, targets)
	})

	t.Run("combat chapter opens a combat copy", func(t *testing.T) {
		enemy := entities.Enemy{Name: "Orco", Combativity: 4, Resistance: 12}
		f := newFixture(t, testutils.CreateTestCombatChapter(10, enemy, 15))
		state := testutils.CreateTestPlayerState()

		view, err := f.service.DisplayChapter(ctx, "user-1", state, 10)
		require.NoError(t, err)

		assert.True(t, view.CombatActive)
		assert.Empty(t, view.Choices, "no choices while combat is active")
		require.NotNil(t, state.ActiveCombat)
		assert.Equal(t, entities.TurnPlayer, state.ActiveCombat.Turn)
		assert.Equal(t, 12, state.ActiveCombat.Enemies[0].InitialResistance)

		state.ActiveCombat.Enemies[0].Resistance = 1
		assert.Equal(t, 12, f.chapters[10].Combat.Enemies[0].Resistance, "chapter data stays immutable")
	})

	t.Run("skill check chapter arms the check", func(t *testing.T) {
		f := newFixture(t, testutils.CreateTestSkillCheckChapter(39, entities.SkillCheck{
			Skill: "percezione", Target: 8, SuccessChapter: 40, FailureChapter: 41,
		}))
		state := testutils.CreateTestPlayerState()

		view, err := f.service.DisplayChapter(ctx, "user-1", state, 39)
		require.NoError(t, err)

		assert.True(t, view.SkillCheckActive)
		require.NotNil(t, state.ActiveSkillCheck)
		assert.Equal(t, 8, state.ActiveSkillCheck.Target)
	})

	t.Run("missing chapter is not found", func(t *testing.T) {
		f := newFixture(t)
		state := testutils.CreateTestPlayerState()

		_, err := f.service.DisplayChapter(ctx, "user-1", state, 999)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("ending phrase marks the chapter terminal", func(t *testing.T) {
		f := newFixture(t, &entities.Chapter{
			ID:   100,
			Text: "Il drago cade. Hai concluso vittoriosamente la tua avventura!",
		})
		state := testutils.CreateTestPlayerState()

		view, err := f.service.DisplayChapter(ctx, "user-1", state, 100)
		require.NoError(t, err)
		assert.True(t, view.IsEnding)
		assert.False(t, view.NoActions)
	})

	t.Run("dead end with no actions is flagged", func(t *testing.T) {
		f := newFixture(t, &entities.Chapter{ID: 50, Text: "Niente da fare qui."})
		state := testutils.CreateTestPlayerState()

		view, err := f.service.DisplayChapter(ctx, "user-1", state, 50)
		require.NoError(t, err)
		assert.True(t, view.NoActions)
	})

	t.Run("zero endurance outside combat ends the game", func(t *testing.T) {
		f := newFixture(t, &entities.Chapter{
			ID:      60,
			Text:    "Il veleno fa il suo corso.",
			Effects: []entities.Effect{{Type: entities.EffectStatChange, Stat: "resistenza", Delta: -99}},
		})
		state := testutils.CreateTestPlayerState()

		view, err := f.service.DisplayChapter(ctx, "user-1", state, 60)
		require.NoError(t, err)

		assert.True(t, view.GameOver)
		assert.Equal(t, game.GameOverEndurance, view.GameOverReason)
		assert.True(t, state.GameOver)
	})

	t.Run("game over blocks navigation", func(t *testing.T) {
		f := newFixture(t, testutils.CreateTestChapter(1))
		state := testutils.CreateTestPlayerState()
		state.GameOver = true

		_, err := f.service.DisplayChapter(ctx, "user-1", state, 1)
		require.Error(t, err)
		assert.True(t, apperr.IsFailedPrecondition(err))
	})
}

func TestDisplayChapter_Autosaves(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, testutils.CreateTestChapter(1), testutils.CreateTestChapter(2))
	state := testutils.CreateTestPlayerState()

	// Plain choice navigation persists without an explicit save
	_, err := f.service.DisplayChapter(ctx, "user-1", state, 2)
	require.NoError(t, err)

	loaded, err := f.saves.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Chapter)
}

func TestTakeItem(t *testing.T) {
	ctx := context.Background()

	newTakeFixture := func(t *testing.T) (*fixture, *entities.PlayerState) {
		t.Helper()
		chapter := testutils.CreateTestChapter(1)
		chapter.ItemsOffered = []entities.ItemOffer{
			{Name: "Corda", Type: entities.ItemTypeGeneric},
		}
		return newFixture(t, chapter), testutils.CreateTestPlayerState()
	}

	t.Run("takes an offered item and autosaves", func(t *testing.T) {
		f, state := newTakeFixture(t)

		offer := entities.ItemOffer{Name: "Corda", Type: entities.ItemTypeGeneric}
		require.NoError(t, f.service.TakeItem(ctx, "user-1", state, offer))
		assert.True(t, state.Inventory.Has("Corda"))

		loaded, err := f.saves.Load(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, loaded.Inventory.Has("Corda"))

		// A second take of the same item is rejected
		err = f.service.TakeItem(ctx, "user-1", state, offer)
		require.Error(t, err)
		assert.True(t, apperr.IsAlreadyExists(err))
	})

	t.Run("rejects items the chapter does not offer", func(t *testing.T) {
		f, state := newTakeFixture(t)

		// A stale or forged request names an item from elsewhere
		err := f.service.TakeItem(ctx, "user-1", state, entities.ItemOffer{
			Name: "Spada Magica", Type: entities.ItemTypeWeapon,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidArgument(err))
		assert.False(t, state.Inventory.Has("Spada Magica"))
	})

	t.Run("the chapter record decides the item type", func(t *testing.T) {
		f, state := newTakeFixture(t)

		// The request claims a weapon; the chapter offers a generic item
		require.NoError(t, f.service.TakeItem(ctx, "user-1", state, entities.ItemOffer{
			Name: "Corda", Type: entities.ItemTypeWeapon,
		}))
		assert.Contains(t, state.Inventory.Backpack, "Corda")
	})
}
