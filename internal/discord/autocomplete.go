package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/riskecrp/meridian-bot/internal/log"
)

const autocompleteTimeout = time.Second * 3

// onAutocomplete answers faction name completion for whichever option is
// currently focused. The platform drops suggestions that arrive late, so the
// cache lookup runs under a short deadline and failures degrade to an empty
// suggestion list instead of an error reply.
func (bot *Bot) onAutocomplete(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	var (
		data  = interaction.ApplicationCommandData()
		query = focusedValue(data.Options)
	)

	ctx, cancel := context.WithTimeout(context.TODO(), autocompleteTimeout)
	defer cancel()

	names, errSuggest := bot.factions.Suggest(ctx, query)
	if errSuggest != nil {
		slog.Error("Failed to load faction suggestions", log.ErrAttr(errSuggest))

		names = nil
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}

	if errRespond := session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	}); errRespond != nil {
		slog.Error("Failed sending autocomplete response", log.ErrAttr(errRespond))
	}
}

// focusedValue digs through subcommand levels for the option the user is
// typing into.
func focusedValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, option := range options {
		if option.Focused {
			value, _ := option.Value.(string)

			return value
		}

		if len(option.Options) > 0 {
			if value := focusedValue(option.Options); value != "" {
				return value
			}
		}
	}

	return ""
}
