package discord

import (
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/riskecrp/meridian-bot/internal/dossier"
)

//nolint:funlen
func (bot *Bot) registerSlashCommands() error {
	dmPerms := false
	userPerms := int64(discordgo.PermissionViewChannel)

	optFaction := &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         OptFaction,
		Description:  "Faction name",
		Required:     true,
		Autocomplete: true,
	}
	optDate := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptDate,
		Description: "Date given (YYYY-MM-DD)",
		Required:    true,
	}
	optAddress := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptAddress,
		Description: "Property address",
		Required:    true,
	}
	optType := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        OptType,
		Description: "Property type",
		Required:    true,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: string(dossier.TypeProperty), Value: string(dossier.TypeProperty)},
			{Name: string(dossier.TypeWarehouse), Value: string(dossier.TypeWarehouse)},
			{Name: string(dossier.TypeHQ), Value: string(dossier.TypeHQ)},
		},
	}

	slashCommands := []*discordgo.ApplicationCommand{
		{
			Name:                     string(CmdFactionInfo),
			Description:              "Look up faction information from the Meridian database",
			DefaultMemberPermissions: &userPerms,
			Options: []*discordgo.ApplicationCommandOption{
				optFaction,
			},
		},
		{
			Name:         string(CmdAddProperty),
			Description:  "Add a faction property (Management only)",
			DMPermission: &dmPerms,
			Options: []*discordgo.ApplicationCommandOption{
				optDate,
				optFaction,
				optAddress,
				optType,
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        OptConfiscated,
					Description: "Is the property already confiscated?",
					Required:    true,
				},
			},
		},
		{
			Name:         string(CmdListProperties),
			Description:  "List every recorded property reward (Management only)",
			DMPermission: &dmPerms,
			Options:      []*discordgo.ApplicationCommandOption{},
		},
		{
			Name:         string(CmdAddDossier),
			Description:  "Add a dossier record",
			DMPermission: &dmPerms,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        string(CmdAddPerson),
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Description: "Add a person to a faction dossier",
					Options: []*discordgo.ApplicationCommandOption{
						optFaction,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        OptCharacter,
							Description: "Character name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        OptPhone,
							Description: "Phone number",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        OptPersonalAddress,
							Description: "Personal address",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        OptLeader,
							Description: "Is this character a faction leader?",
						},
					},
				},
				{
					Name:        string(CmdAddLocation),
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Description: "Add a location to a faction dossier",
					Options: []*discordgo.ApplicationCommandOption{
						optFaction,
						optAddress,
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        OptIsHQ,
							Description: "Is this address the faction HQ?",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:         string(CmdConfiscate),
			Description:  "Mark a faction property as confiscated (Management only)",
			DMPermission: &dmPerms,
			Options: []*discordgo.ApplicationCommandOption{
				optDate,
				optFaction,
				optAddress,
				optType,
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        OptConfiscated,
					Description: "Confirm the confiscation",
					Required:    true,
				},
			},
		},
	}

	_, errBulk := bot.session.ApplicationCommandBulkOverwrite(bot.config.AppID, bot.config.GuildID, slashCommands)
	if errBulk != nil {
		return errors.Join(errBulk, ErrOverwriteCommands)
	}

	slog.Debug("Registered discord commands", slog.Int("count", len(slashCommands)))

	return nil
}
