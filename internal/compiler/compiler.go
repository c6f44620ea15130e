// Package compiler turns a directory of markdown chapter files into the
// JSON game data artifact the engine loads at startup. It runs offline,
// ahead of play.
//
// Chapters are authored as markdown with HTML-comment directives:
//
//	<!--CHAPTER_ID:42-->
//	<!--TITLE:La Porta di Ferro-->
//	<!--IMAGE:images/porta.jpg|La porta di ferro-->
//	<!--EFFECT:STAT_CHANGE|resistenza,-2-->
//	<!--KEYWORD:permanente|TRADIMENTO-->
//	<!--COMBAT_START--> <!--COMBAT_ENEMY:Orco|4|12--> <!--COMBAT_VICTORY:43--> <!--COMBAT_END-->
//	<!--SKILL_CHECK:percezione|8|40|41-->
//
// followed by narrative text and a choices block opened by `---` or
// `choices:` with lines of the form `- text: T target: N condition: C`.
package compiler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/librogame/passomorto/internal/entities"
	apperr "github.com/librogame/passomorto/internal/errors"
)

var (
	chapterIDRe    = regexp.MustCompile(`<!--CHAPTER_ID:(\d+)-->`)
	titleRe        = regexp.MustCompile(`<!--TITLE:(.*?)-->`)
	imageRe        = regexp.MustCompile(`<!--IMAGE:([^|]*?)(?:\|(.*?))?-->`)
	effectRe       = regexp.MustCompile(`<!--EFFECT:(.*?)\|(.*?)-->`)
	keywordRe      = regexp.MustCompile(`<!--KEYWORD:(.*?)\|(.*?)-->`)
	combatStartRe  = regexp.MustCompile(`<!--COMBAT_START-->`)
	combatEndRe    = regexp.MustCompile(`<!--COMBAT_END-->`)
	combatEnemyRe  = regexp.MustCompile(`<!--COMBAT_ENEMY:(.*?)\|(\d+)\|(\d+)-->`)
	combatWinRe    = regexp.MustCompile(`<!--COMBAT_VICTORY:(\d+)-->`)
	skillCheckRe   = regexp.MustCompile(`<!--SKILL_CHECK:(.*?)\|(\d+)\|(\d+)\|(\d+)-->`)
	numericFileRe  = regexp.MustCompile(`^(\d+)\.md$`)
	choiceTextRe   = regexp.MustCompile(`- text: (.*?)(?:\s*$|\s+target:|\s+condition:)`)
	choiceTargetRe = regexp.MustCompile(`target: (\d+)`)
	choiceCondRe   = regexp.MustCompile(`condition: (.*?)(\s*$|\s+target:)`)
)

// CompileDir compiles every .md file under storyDir. A file read error
// aborts the whole run; a per-chapter parse anomaly only skips that
// chapter with a warning.
func CompileDir(ctx context.Context, storyDir string) (map[int]*entities.Chapter, error) {
	dirEntries, err := os.ReadDir(storyDir)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to read story directory '%s'", storyDir)
	}

	var files []string
	for _, entry := range dirEntries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			files = append(files, entry.Name())
		}
	}
	log.Printf("Compiling %d markdown files from %s", len(files), storyDir)

	chapters := make(map[int]*entities.Chapter)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, name := range files {
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(filepath.Join(storyDir, name))
			if err != nil {
				return apperr.Wrapf(err, "failed to read '%s'", name)
			}

			chapter := ParseChapter(name, string(content))
			if chapter == nil {
				return nil // skipped, already warned
			}

			mu.Lock()
			if _, exists := chapters[chapter.ID]; exists {
				log.Printf("WARNING: duplicate chapter id %d (file %s), overwriting", chapter.ID, name)
			}
			chapters[chapter.ID] = chapter
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return chapters, nil
}

// ParseChapter parses one markdown file into a chapter record. Returns
// nil when the file yields no usable chapter id.
func ParseChapter(filename, content string) *entities.Chapter {
	chapter := &entities.Chapter{
		Images:  []entities.Image{},
		Choices: []entities.Choice{},
		Effects: []entities.Effect{},
	}

	if m := chapterIDRe.FindStringSubmatch(content); m != nil {
		chapter.ID, _ = strconv.Atoi(m[1])
	} else if m := numericFileRe.FindStringSubmatch(filepath.Base(filename)); m != nil {
		chapter.ID, _ = strconv.Atoi(m[1])
	} else {
		log.Printf("WARNING: skipping %s: cannot determine chapter id", filename)
		return nil
	}

	chapter.Title = fmt.Sprintf("Capitolo %d", chapter.ID)
	if m := titleRe.FindStringSubmatch(content); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			chapter.Title = title
		}
	}

	var (
		textLines      []string
		parsingChoices bool
		parsingCombat  bool
		currentCombat  *entities.CombatBlock
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		choicesStart := trimmed == "---" || strings.EqualFold(trimmed, "choices:")

		switch {
		case imageRe.MatchString(line):
			m := imageRe.FindStringSubmatch(line)
			alt := strings.TrimSpace(m[2])
			if alt == "" {
				alt = fmt.Sprintf("Illustrazione per %s", chapter.Title)
			}
			chapter.Images = append(chapter.Images, entities.Image{
				Src: strings.TrimSpace(m[1]),
				Alt: alt,
			})

		case effectRe.MatchString(line):
			m := effectRe.FindStringSubmatch(line)
			chapter.Effects = append(chapter.Effects, parseEffect(chapter.ID, m[1], m[2]))

		case keywordRe.MatchString(line):
			m := keywordRe.FindStringSubmatch(line)
			chapter.Effects = append(chapter.Effects, entities.Effect{
				Type:         entities.EffectKeywordAdd,
				KeywordScope: entities.KeywordScope(strings.ToLower(strings.TrimSpace(m[1]))),
				KeywordName:  strings.ToUpper(strings.TrimSpace(m[2])),
			})

		case combatStartRe.MatchString(line):
			parsingCombat = true
			currentCombat = &entities.CombatBlock{Enemies: []entities.Enemy{}}

		case combatEndRe.MatchString(line):
			if parsingCombat && currentCombat != nil {
				chapter.Combat = currentCombat
				parsingCombat = false
			}

		case parsingCombat && combatEnemyRe.MatchString(line):
			m := combatEnemyRe.FindStringSubmatch(line)
			combativity, _ := strconv.Atoi(m[2])
			resistance, _ := strconv.Atoi(m[3])
			currentCombat.Enemies = append(currentCombat.Enemies, entities.Enemy{
				Name:              strings.TrimSpace(m[1]),
				Combativity:       combativity,
				Resistance:        resistance,
				InitialResistance: resistance,
			})

		case parsingCombat && combatWinRe.MatchString(line):
			m := combatWinRe.FindStringSubmatch(line)
			currentCombat.VictoryChapter, _ = strconv.Atoi(m[1])

		case skillCheckRe.MatchString(line):
			m := skillCheckRe.FindStringSubmatch(line)
			target, _ := strconv.Atoi(m[2])
			success, _ := strconv.Atoi(m[3])
			failure, _ := strconv.Atoi(m[4])
			chapter.SkillCheck = &entities.SkillCheck{
				Skill:          strings.TrimSpace(m[1]),
				Target:         target,
				SuccessChapter: success,
				FailureChapter: failure,
			}

		case choicesStart:
			parsingChoices = true

		case parsingChoices && strings.HasPrefix(trimmed, "-"):
			if choice, ok := parseChoiceLine(line); ok {
				chapter.Choices = append(chapter.Choices, choice)
			} else {
				log.Printf("WARNING: [%d] malformed choice line: %s", chapter.ID, trimmed)
			}

		case !strings.HasPrefix(line, "<!--") && !parsingCombat && !parsingChoices:
			textLines = append(textLines, line)
		}
	}

	chapter.Text = strings.TrimSpace(strings.Join(textLines, "\n"))
	chapter.ItemsOffered = ScanItemOffers(chapter.Text)

	return chapter
}

// parseEffect turns an EFFECT directive into a typed effect. Unrecognized
// types keep their raw details so the engine can log and skip them.
func parseEffect(chapterID int, effectType, details string) entities.Effect {
	kind := entities.EffectType(strings.ToUpper(strings.TrimSpace(effectType)))
	details = strings.TrimSpace(details)
	first, second, _ := strings.Cut(details, ",")
	first = strings.TrimSpace(first)
	second = strings.TrimSpace(second)

	switch kind {
	case entities.EffectStatChange:
		delta, err := strconv.Atoi(second)
		if err != nil || first == "" {
			log.Printf("WARNING: [%d] invalid STAT_CHANGE details: %s", chapterID, details)
			return entities.Effect{Type: kind, Raw: details}
		}
		return entities.Effect{Type: kind, Stat: first, Delta: delta}

	case entities.EffectItemAdd:
		if first == "" || second == "" {
			log.Printf("WARNING: [%d] invalid ITEM_ADD details: %s", chapterID, details)
			return entities.Effect{Type: kind, Raw: details}
		}
		return entities.Effect{Type: kind, ItemType: entities.ParseItemType(first), ItemName: second}

	case entities.EffectItemRemove:
		return entities.Effect{Type: kind, ItemName: first}

	case entities.EffectCombatModifier:
		return entities.Effect{Type: kind, ModKey: first, ModValue: second}

	default:
		return entities.Effect{Type: kind, Raw: details}
	}
}

// parseChoiceLine parses `- text: T target: N [condition: C]`
func parseChoiceLine(line string) (entities.Choice, bool) {
	textMatch := choiceTextRe.FindStringSubmatch(line)
	targetMatch := choiceTargetRe.FindStringSubmatch(line)
	if textMatch == nil || targetMatch == nil {
		return entities.Choice{}, false
	}

	target, _ := strconv.Atoi(targetMatch[1])
	choice := entities.Choice{
		Text:   strings.TrimSpace(textMatch[1]),
		Target: target,
	}
	if condMatch := choiceCondRe.FindStringSubmatch(line); condMatch != nil {
		choice.Condition = entities.ParseCondition(condMatch[1])
	}
	return choice, true
}

// WriteArtifact serializes the compiled chapters to a pretty-printed JSON
// file keyed by chapter id
func WriteArtifact(path string, chapters map[int]*entities.Chapter) error {
	data, err := json.MarshalIndent(chapters, "", "    ")
	if err != nil {
		return apperr.Wrap(err, "failed to marshal game data")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.Wrapf(err, "failed to write '%s'", path)
	}
	return nil
}
