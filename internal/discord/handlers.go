package discord

import (
	"github.com/bwmarrin/discordgo"
)

type CommandOptions map[string]*discordgo.ApplicationCommandInteractionDataOption

// OptionMap flattens one level of slash command options into a simple map.
func OptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) CommandOptions {
	optionM := make(CommandOptions, len(options))
	for _, opt := range options {
		optionM[opt.Name] = opt
	}

	return optionM
}

func (opts CommandOptions) String(key string) string {
	root, found := opts[key]
	if !found {
		return ""
	}

	val, ok := root.Value.(string)
	if !ok {
		return ""
	}

	return val
}

func (opts CommandOptions) Bool(key string) bool {
	root, found := opts[key]
	if !found {
		return false
	}

	val, ok := root.Value.(bool)
	if !ok {
		return false
	}

	return val
}

// memberHasRole reports whether the invoking guild member holds any of the
// given role IDs. Empty IDs never match, so an unconfigured role denies.
func memberHasRole(member *discordgo.Member, roleIDs ...string) bool {
	if member == nil {
		return false
	}

	for _, held := range member.Roles {
		for _, required := range roleIDs {
			if required != "" && held == required {
				return true
			}
		}
	}

	return false
}

// requireRole is the authorization gate for mutating commands, checked before
// any record store call.
func requireRole(interaction *discordgo.InteractionCreate, roleIDs ...string) error {
	if !memberHasRole(interaction.Member, roleIDs...) {
		return ErrPermissionDenied
	}

	return nil
}
