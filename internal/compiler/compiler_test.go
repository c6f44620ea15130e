package compiler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librogame/passomorto/internal/compiler"
	"github.com/librogame/passomorto/internal/entities"
)

const fullChapter = `<!--CHAPTER_ID:42-->
<!--TITLE:La Porta di Ferro-->
<!--IMAGE:images/porta.jpg|La porta di ferro-->
<!--EFFECT:STAT_CHANGE|resistenza,-2-->
<!--KEYWORD:permanente|tradimento-->

La porta cigola e si apre su un corridoio buio.

Puoi prendere la Lanterna se lo desideri.

---
- text: Entra nel corridoio target: 43
- text: Torna indietro target: 40 condition: possiedi Corda
`

func TestParseChapter_FullDirectives(t *testing.T) {
	chapter := compiler.ParseChapter("42.md", fullChapter)
	require.NotNil(t, chapter)

	assert.Equal(t, 42, chapter.ID)
	assert.Equal(t, "La Porta di Ferro", chapter.Title)

	require.Len(t, chapter.Images, 1)
	assert.Equal(t, "images/porta.jpg", chapter.Images[0].Src)
	assert.Equal(t, "La porta di ferro", chapter.Images[0].Alt)

	require.Len(t, chapter.Effects, 2)
	assert.Equal(t, entities.Effect{
		Type:  entities.EffectStatChange,
		Stat:  "resistenza",
		Delta: -2,
	}, chapter.Effects[0])
	assert.Equal(t, entities.Effect{
		Type:         entities.EffectKeywordAdd,
		KeywordScope: entities.KeywordPermanent,
		KeywordName:  "TRADIMENTO",
	}, chapter.Effects[1])

	require.Len(t, chapter.Choices, 2)
	assert.Equal(t, "Entra nel corridoio", chapter.Choices[0].Text)
	assert.Equal(t, 43, chapter.Choices[0].Target)
	assert.Nil(t, chapter.Choices[0].Condition)
	require.NotNil(t, chapter.Choices[1].Condition)
	assert.Equal(t, entities.ConditionHasItem, chapter.Choices[1].Condition.Kind)

	assert.Contains(t, chapter.Text, "La porta cigola")
	assert.NotContains(t, chapter.Text, "CHAPTER_ID")
	assert.NotContains(t, chapter.Text, "- text:")

	require.Len(t, chapter.ItemsOffered, 1)
	assert.Equal(t, "Lanterna", chapter.ItemsOffered[0].Name)
	assert.Equal(t, entities.ItemTypeGeneric, chapter.ItemsOffered[0].Type)
}

func TestParseChapter_CombatBlock(t *testing.T) {
	content := `<!--CHAPTER_ID:10-->
Un orco ti sbarra la strada!
<!--COMBAT_START-->
<!--COMBAT_ENEMY:Orco delle Caverne|4|12-->
<!--COMBAT_ENEMY:Goblin|2|6-->
<!--COMBAT_VICTORY:15-->
<!--COMBAT_END-->
`
	chapter := compiler.ParseChapter("10.md", content)
	require.NotNil(t, chapter)
	require.NotNil(t, chapter.Combat)

	require.Len(t, chapter.Combat.Enemies, 2)
	assert.Equal(t, entities.Enemy{
		Name:              "Orco delle Caverne",
		Combativity:       4,
		Resistance:        12,
		InitialResistance: 12,
	}, chapter.Combat.Enemies[0])
	assert.Equal(t, 15, chapter.Combat.VictoryChapter)
}

func TestParseChapter_SkillCheck(t *testing.T) {
	content := `<!--CHAPTER_ID:39-->
<!--SKILL_CHECK:percezione|8|40|41-->
Qualcosa si muove nell'ombra.
`
	chapter := compiler.ParseChapter("39.md", content)
	require.NotNil(t, chapter)
	require.NotNil(t, chapter.SkillCheck)

	assert.Equal(t, "percezione", chapter.SkillCheck.Skill)
	assert.Equal(t, 8, chapter.SkillCheck.Target)
	assert.Equal(t, 40, chapter.SkillCheck.SuccessChapter)
	assert.Equal(t, 41, chapter.SkillCheck.FailureChapter)
}

func TestParseChapter_Fallbacks(t *testing.T) {
	t.Run("id from numeric filename", func(t *testing.T) {
		chapter := compiler.ParseChapter("7.md", "Solo testo.")
		require.NotNil(t, chapter)
		assert.Equal(t, 7, chapter.ID)
		assert.Equal(t, "Capitolo 7", chapter.Title)
	})

	t.Run("no id means the file is skipped", func(t *testing.T) {
		chapter := compiler.ParseChapter("introduzione.md", "Solo testo.")
		assert.Nil(t, chapter)
	})

	t.Run("image alt defaults to the title", func(t *testing.T) {
		content := "<!--CHAPTER_ID:3-->\n<!--IMAGE:images/bosco.jpg-->\n"
		chapter := compiler.ParseChapter("3.md", content)
		require.NotNil(t, chapter)
		require.Len(t, chapter.Images, 1)
		assert.Equal(t, "Illustrazione per Capitolo 3", chapter.Images[0].Alt)
	})

	t.Run("unknown effect keeps its raw details", func(t *testing.T) {
		content := "<!--CHAPTER_ID:4-->\n<!--EFFECT:WEATHER|pioggia,1-->\n"
		chapter := compiler.ParseChapter("4.md", content)
		require.NotNil(t, chapter)
		require.Len(t, chapter.Effects, 1)
		assert.Equal(t, entities.EffectType("WEATHER"), chapter.Effects[0].Type)
		assert.Equal(t, "pioggia,1", chapter.Effects[0].Raw)
	})
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"), []byte("<!--CHAPTER_ID:1-->\nInizio."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.md"), []byte("<!--CHAPTER_ID:2-->\nSeguito."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.txt"), []byte("ignorato"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "senzaid.md"), []byte("nessuna direttiva"), 0o644))

	chapters, err := compiler.CompileDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, chapters, 2)
	assert.Equal(t, "Inizio.", chapters[1].Text)
	assert.Equal(t, "Seguito.", chapters[2].Text)
}

func TestWriteArtifact_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gamedata.json")

	chapters := map[int]*entities.Chapter{
		1: {ID: 1, Title: "Capitolo 1", Text: "Inizio."},
	}
	require.NoError(t, compiler.WriteArtifact(path, chapters))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Capitolo 1"`)
}
