package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

func TestCreationDraft_SpendPoint(t *testing.T) {
	t.Run("combativity costs one point for plus one", func(t *testing.T) {
		draft := entities.NewCreationDraft()

		require.NoError(t, draft.SpendPoint("combattivita"))
		assert.Equal(t, entities.BaseCombativity+1, draft.Stats.Combativity)
		assert.Equal(t, 2, draft.Remaining())
	})

	t.Run("endurance gains three and raises the cap", func(t *testing.T) {
		draft := entities.NewCreationDraft()

		require.NoError(t, draft.SpendPoint("resistenza"))
		assert.Equal(t, entities.BaseEndurance+3, draft.Stats.Endurance)
		assert.Equal(t, entities.BaseEndurance+3, draft.Stats.EnduranceMax)
	})

	t.Run("at most one point per stat", func(t *testing.T) {
		draft := entities.NewCreationDraft()

		require.NoError(t, draft.SpendPoint("mira"))
		err := draft.SpendPoint("mira")
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("cannot overspend the pool", func(t *testing.T) {
		draft := entities.NewCreationDraft()

		require.NoError(t, draft.SpendPoint("mira"))
		require.NoError(t, draft.SpendPoint("movimento"))
		require.NoError(t, draft.SpendPoint("percezione"))

		err := draft.SpendPoint("sotterfugio")
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("rejects non-spendable stats", func(t *testing.T) {
		draft := entities.NewCreationDraft()

		err := draft.SpendPoint("puntiEsperienza")
		require.Error(t, err)
		assert.True(t, apperr.IsInvalidArgument(err))
	})
}

func TestCreationDraft_RefundPoint(t *testing.T) {
	draft := entities.NewCreationDraft()

	require.NoError(t, draft.SpendPoint("resistenza"))
	require.NoError(t, draft.RefundPoint("resistenza"))

	assert.Equal(t, entities.BaseEndurance, draft.Stats.Endurance)
	assert.Equal(t, entities.BaseEndurance, draft.Stats.EnduranceMax)
	assert.Equal(t, 3, draft.Remaining())

	err := draft.RefundPoint("resistenza")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreationDraft_Language(t *testing.T) {
	draft := entities.NewCreationDraft()

	require.NoError(t, draft.SelectLanguage("Sindarin"))
	assert.Equal(t, 2, draft.Remaining())

	err := draft.SelectLanguage("Quenya")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	draft.ClearLanguage()
	assert.Equal(t, 3, draft.Remaining())
	require.NoError(t, draft.SelectLanguage("Quenya"))
}

func TestCreationDraft_Confirmable(t *testing.T) {
	draft := entities.NewCreationDraft()
	assert.False(t, draft.Confirmable())

	require.NoError(t, draft.SpendPoint("combattivita"))
	require.NoError(t, draft.SpendPoint("resistenza"))
	assert.False(t, draft.Confirmable(), "partial spending must not confirm")

	require.NoError(t, draft.SelectLanguage("Orchesco"))
	assert.True(t, draft.Confirmable())
}
