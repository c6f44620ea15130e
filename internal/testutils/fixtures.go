package testutils

import (
	"github.com/librogame/passomorto/internal/entities"
)

// CreateTestPlayerState returns a freshly created character standing in
// chapter 1, with the canonical base stats and starting equipment
func CreateTestPlayerState() *entities.PlayerState {
	return &entities.PlayerState{
		Chapter:   1,
		Stats:     entities.BaseStats(),
		Languages: entities.StartingLanguages(),
		Gold:      entities.StartingGold,
		Inventory: entities.StartingInventory(),
		Keywords:  entities.NewKeywords(),
	}
}

// CreateTestChapter returns a plain narrative chapter with a single
// unconditional choice to the next chapter
func CreateTestChapter(id int) *entities.Chapter {
	return &entities.Chapter{
		ID:    id,
		Title: "Capitolo di prova",
		Text:  "Il sentiero prosegue verso nord.",
		Choices: []entities.Choice{
			{Text: "Prosegui", Target: id + 1},
		},
	}
}

// CreateTestCombatChapter returns a chapter that opens a combat against
// a single enemy
func CreateTestCombatChapter(id int, enemy entities.Enemy, victoryChapter int) *entities.Chapter {
	return &entities.Chapter{
		ID:    id,
		Title: "Imboscata",
		Text:  "Un nemico ti sbarra la strada!",
		Combat: &entities.CombatBlock{
			Enemies:        []entities.Enemy{enemy},
			VictoryChapter: victoryChapter,
		},
	}
}

// CreateTestSkillCheckChapter returns a chapter that opens a skill check
func CreateTestSkillCheckChapter(id int, check entities.SkillCheck) *entities.Chapter {
	return &entities.Chapter{
		ID:         id,
		Title:      "Una prova difficile",
		Text:       "Serve mano ferma.",
		SkillCheck: &check,
	}
}

// CreateTestChapterMap builds a chapter repository payload from chapters
func CreateTestChapterMap(chapters ...*entities.Chapter) map[int]*entities.Chapter {
	m := make(map[int]*entities.Chapter, len(chapters))
	for _, ch := range chapters {
		m[ch.ID] = ch
	}
	return m
}
