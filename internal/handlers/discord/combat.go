package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// handleAttack resolves the player phase, then schedules the enemy phase
// after the configured pacing delay
func (h *Handler) handleAttack(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession) {
	ctx := context.Background()

	round, err := h.gameService.PlayerAttack(ctx, userID, session.State)
	if err != nil {
		log.Printf("player attack failed for user %s: %v", userID, err)
		h.respondEphemeral(s, i, "Non puoi attaccare in questo momento.")
		return
	}

	if round.Victory {
		h.update(s, i, h.combatInterlude(session, "Vittoria!"))
		h.afterDelay(func() {
			h.continueAfterCombat(s, i, userID, session, round.NextChapter)
		})
		return
	}

	// Show the player phase with the attack disabled, then let the
	// enemies answer
	h.update(s, i, h.combatInterlude(session, "I nemici rispondono..."))
	h.afterDelay(func() {
		h.runEnemyTurn(s, i, userID, session)
	})
}

// runEnemyTurn plays the enemy phase and edits the combat message with
// the outcome
func (h *Handler) runEnemyTurn(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession) {
	ctx := context.Background()

	round, err := h.gameService.EnemyTurn(ctx, userID, session.State)
	if err != nil {
		log.Printf("enemy turn failed for user %s: %v", userID, err)
		return
	}

	if round.Defeat {
		h.editCombatMessage(s, i, h.renderDefeat(session))
		return
	}

	// Back to the player
	r := h.combatInterlude(session, "Tocca a te.")
	r.Components = []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Attacca!",
				Style:    discordgo.DangerButton,
				CustomID: "gamebook:attack",
			},
		}},
	}
	h.editCombatMessage(s, i, r)
}

// continueAfterCombat leaves the combat screen for the victory chapter
func (h *Handler) continueAfterCombat(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession, chapterID int) {
	view, err := h.gameService.DisplayChapter(context.Background(), userID, session.State, chapterID)
	if err != nil {
		log.Printf("post-combat chapter %d failed for user %s: %v", chapterID, userID, err)
		return
	}

	h.editCombatMessage(s, i, h.renderChapter(session, view))
}

// handleSkillRoll resolves the active skill check and moves to the
// branch chapter after a short pause on the result
func (h *Handler) handleSkillRoll(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, session *playSession) {
	result, err := h.gameService.RollSkillCheck(context.Background(), userID, session.State)
	if err != nil {
		log.Printf("skill check failed for user %s: %v", userID, err)
		h.respondEphemeral(s, i, "Non c'è nessuna prova di abilità in corso.")
		return
	}

	outcome := "**Fallimento.**"
	if result.Success {
		outcome = "**Successo!**"
	}
	embed := &discordgo.MessageEmbed{
		Title: "Prova di abilità",
		Description: fmt.Sprintf("%s: dadi %v + abilità %d = **%d** (obiettivo %d)\n\n%s",
			result.SkillName, result.Rolls, result.SkillValue, result.Total, result.Target, outcome),
		Color:  embedColorNarrative,
		Footer: statsFooter(session.State),
	}
	h.update(s, i, &response{Embeds: []*discordgo.MessageEmbed{embed}})

	h.afterDelay(func() {
		h.continueAfterCombat(s, i, userID, session, result.NextChapter)
	})
}

// combatInterlude renders the combat screen without action buttons,
// status line included
func (h *Handler) combatInterlude(session *playSession, status string) *response {
	embed := h.combatEmbed(session.State)
	embed.Description = status
	embed.Footer = statsFooter(session.State)
	return &response{Embeds: []*discordgo.MessageEmbed{embed}}
}

func (h *Handler) renderDefeat(session *playSession) *response {
	embed := &discordgo.MessageEmbed{
		Title:       "Sconfitta",
		Description: logTail(session.State.CombatLog, 10) + "\n\n**La tua avventura finisce qui.**",
		Color:       embedColorGameOver,
	}
	return &response{Embeds: []*discordgo.MessageEmbed{embed}}
}

// editCombatMessage edits the message the combat interaction lives on
func (h *Handler) editCombatMessage(s *discordgo.Session, i *discordgo.InteractionCreate, r *response) {
	if i.Message == nil {
		return
	}
	h.editMessage(s, i.ChannelID, i.Message.ID, r)
}

// afterDelay schedules fn after the pacing delay, or runs it inline when
// pacing is disabled
func (h *Handler) afterDelay(fn func()) {
	if h.turnDelay <= 0 {
		fn()
		return
	}
	time.AfterFunc(h.turnDelay, fn)
}
