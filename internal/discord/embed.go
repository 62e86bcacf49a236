package discord

import (
	"github.com/bwmarrin/discordgo"
	embed "github.com/leighmacdonald/discordgo-embed"
)

const (
	ColourSuccess = 302673
	ColourInfo    = 3581519
	ColourWarn    = 14327864
	ColourError   = 13631488
)

const providerName = "Meridian Dossier"

// NewEmbed constructs a new discord embed message. This must not be chained
// if using the helper methods below.
func NewEmbed(args ...string) *Embed {
	newEmbed := embed.
		NewEmbed().
		SetFooter(providerName)

	if len(args) == 2 {
		newEmbed = newEmbed.SetTitle(args[0]).
			SetDescription(args[1])
	} else if len(args) == 1 {
		newEmbed = newEmbed.SetTitle(args[0])
	}

	return &Embed{
		Emb: newEmbed,
	}
}

type Embed struct {
	Emb *embed.Embed
}

func (e *Embed) Embed() *embed.Embed {
	return e.Emb
}

func (e *Embed) Message() *discordgo.MessageEmbed {
	return e.Emb.Truncate().MessageEmbed
}
