package creation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
	"github.com/librogame/passomorto/internal/services/creation"
)

func TestConfirm_FullSpendScenario(t *testing.T) {
	ctx := context.Background()
	svc := creation.NewService()

	draft := svc.NewDraft(ctx)
	require.NoError(t, svc.SpendPoint(ctx, draft, "combattivita"))
	require.NoError(t, svc.SpendPoint(ctx, draft, "resistenza"))
	require.NoError(t, svc.SelectLanguage(ctx, draft, "Sindarin"))

	state := entities.NewPlayerState()
	require.NoError(t, svc.Confirm(ctx, draft, state))

	assert.Equal(t, 6, state.Stats.Combativity)
	assert.Equal(t, 33, state.Stats.Endurance)
	assert.Equal(t, 33, state.Stats.EnduranceMax)
	assert.Equal(t, 0, state.Stats.ExperiencePoints, "the pool is spent, not carried")

	assert.Equal(t, []string{"Lingua Comune", "Sindarin"}, state.Languages)
	assert.Equal(t, entities.StartingGold, state.Gold)
	assert.Equal(t, entities.StartingInventory(), state.Inventory)
	assert.NotNil(t, state.Keywords)
	assert.True(t, state.Started())
}

func TestConfirm_RequiresExactExhaustion(t *testing.T) {
	ctx := context.Background()
	svc := creation.NewService()

	draft := svc.NewDraft(ctx)
	require.NoError(t, svc.SpendPoint(ctx, draft, "mira"))

	state := entities.NewPlayerState()
	err := svc.Confirm(ctx, draft, state)
	require.Error(t, err)
	assert.True(t, apperr.IsFailedPrecondition(err))
	assert.False(t, state.Started())
}

func TestSelectLanguage_OnlyFromOfferList(t *testing.T) {
	ctx := context.Background()
	svc := creation.NewService()
	draft := svc.NewDraft(ctx)

	err := svc.SelectLanguage(ctx, draft, "Klingon")
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidArgument(err))

	assert.Equal(t, []string{
		"Adunaico", "Esterling", "Linguaggio Nero", "Nahaiduk",
		"Orchesco", "Quenya", "Segnali Naturali", "Sindarin",
	}, svc.Languages())
}

func TestApplyStartingItems(t *testing.T) {
	ctx := context.Background()
	svc := creation.NewService()

	confirmed := func(t *testing.T) *entities.PlayerState {
		t.Helper()
		draft := svc.NewDraft(ctx)
		require.NoError(t, svc.SpendPoint(ctx, draft, "mira"))
		require.NoError(t, svc.SpendPoint(ctx, draft, "movimento"))
		require.NoError(t, svc.SpendPoint(ctx, draft, "percezione"))
		state := entities.NewPlayerState()
		require.NoError(t, svc.Confirm(ctx, draft, state))
		return state
	}

	pick := func(names ...string) []entities.ItemOffer {
		var picked []entities.ItemOffer
		for _, offer := range svc.StartingItems() {
			for _, name := range names {
				if offer.Name == name {
					picked = append(picked, offer)
				}
			}
		}
		return picked
	}

	t.Run("exactly three items join the inventory", func(t *testing.T) {
		state := confirmed(t)

		err := svc.ApplyStartingItems(ctx, state, pick("Corda", "Lanterna", "Pozione Guaritrice"))
		require.NoError(t, err)

		assert.True(t, state.Inventory.Has("Corda"))
		assert.True(t, state.Inventory.Has("Lanterna"))
		assert.True(t, state.Inventory.Has("Pozione Guaritrice"))
		assert.Len(t, state.Inventory.Backpack, 3)
	})

	t.Run("the extra sword lands in the weapon list", func(t *testing.T) {
		state := confirmed(t)

		err := svc.ApplyStartingItems(ctx, state,
			pick("Spada Aggiuntiva/Arma da corpo a corpo", "Corda", "Lanterna"))
		require.NoError(t, err)

		assert.Len(t, state.Inventory.Weapons, 3)
	})

	t.Run("wrong count is rejected", func(t *testing.T) {
		state := confirmed(t)

		err := svc.ApplyStartingItems(ctx, state, pick("Corda", "Lanterna"))
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("items off the list are rejected", func(t *testing.T) {
		state := confirmed(t)

		picked := append(pick("Corda", "Lanterna"),
			entities.ItemOffer{Name: "Bacchetta Magica", Type: entities.ItemTypeGeneric})
		err := svc.ApplyStartingItems(ctx, state, picked)
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidArgument(err))
	})

	t.Run("requires a created character", func(t *testing.T) {
		err := svc.ApplyStartingItems(ctx, entities.NewPlayerState(),
			pick("Corda", "Lanterna", "Cuneo di Legno"))
		require.Error(t, err)
		assert.True(t, apperr.IsFailedPrecondition(err))
	})
}
