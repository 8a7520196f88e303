package bot

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"IVSentinel/internal/render"
	"IVSentinel/internal/store"
)

// Button custom IDs. The chart's parameters live in the store keyed by
// message ID, so buttons keep working across restarts.
const (
	idRefresh  = "ivchart:refresh"
	idPrevExp  = "ivchart:prev"
	idNextExp  = "ivchart:next"
	idSwapType = "ivchart:swap"
	idDelete   = "ivchart:delete"
)

func chartComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Refresh", Style: discordgo.SecondaryButton, CustomID: idRefresh},
				discordgo.Button{Label: "◀ Exp", Style: discordgo.SecondaryButton, CustomID: idPrevExp},
				discordgo.Button{Label: "Exp ▶", Style: discordgo.SecondaryButton, CustomID: idNextExp},
				discordgo.Button{Label: "Calls ⇄ Puts", Style: discordgo.PrimaryButton, CustomID: idSwapType},
				discordgo.Button{Label: "Delete", Style: discordgo.DangerButton, CustomID: idDelete},
			},
		},
	}
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	switch customID {
	case idRefresh, idPrevExp, idNextExp, idSwapType, idDelete:
	default:
		return
	}

	rec, err := b.store.Get(i.Message.ID)
	if errors.Is(err, store.ErrNotFound) {
		b.respondEphemeral(s, i, "This chart is no longer tracked. Run the command again.")
		return
	}
	if err != nil {
		log.Printf("[ERROR] look up chart %s: %v", i.Message.ID, err)
		return
	}

	if customID == idDelete {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}); err != nil {
			log.Printf("[ERROR] ack delete: %v", err)
			return
		}
		if err := s.ChannelMessageDelete(rec.ChannelID, rec.MessageID); err != nil {
			log.Printf("[WARN] delete chart message: %v", err)
		}
		if err := b.store.Delete(rec.MessageID); err != nil {
			log.Printf("[WARN] delete chart record: %v", err)
		}
		return
	}

	switch customID {
	case idPrevExp, idNextExp:
		step := 1
		if customID == idPrevExp {
			step = -1
		}
		exp, err := b.gen.AdjacentExpiration(rec.Symbol, rec.OptionType, rec.Expiration, step)
		if err != nil {
			b.respondEphemeral(s, i, "No further expiration in that direction.")
			return
		}
		rec.Expiration = exp
	case idSwapType:
		rec.OptionType = rec.OptionType.Opposite()
	}

	// Regeneration takes API calls; ack now and swap the image in after.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Printf("[ERROR] ack component: %v", err)
		return
	}

	res, err := b.gen.Generate(requestOf(rec))
	if err != nil {
		log.Printf("[WARN] regenerate %s: %v", rec.Symbol, err)
		content := ErrorContent(rec.Symbol, err)
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
			log.Printf("[ERROR] edit component response: %v", err)
		}
		return
	}
	// The resolver may have snapped the expiration again; keep the record in
	// sync with what the chart actually shows.
	rec.Expiration = res.Expiration

	png, err := render.Chart(res)
	if err != nil {
		log.Printf("[ERROR] render %s: %v", rec.Symbol, err)
		return
	}

	content := ResultContent(res)
	comps := chartComponents()
	none := []*discordgo.MessageAttachment{}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:     &content,
		Components:  &comps,
		Files:       []*discordgo.File{chartFile(png)},
		Attachments: &none,
	}); err != nil {
		log.Printf("[ERROR] update chart message: %v", err)
		return
	}

	if err := b.store.Update(rec); err != nil {
		log.Printf("[WARN] update chart record: %v", err)
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("[ERROR] ephemeral response: %v", err)
	}
}
