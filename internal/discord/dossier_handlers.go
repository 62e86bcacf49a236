package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/riskecrp/meridian-bot/internal/dossier"
	"github.com/riskecrp/meridian-bot/internal/log"
)

// commandError maps a handler failure onto what the user is allowed to see.
// Validation, authorization, duplicate and not-found failures carry their own
// message; anything else, remote store failures included, is logged in full
// and collapsed into a generic reply.
func commandError(err error) error {
	for _, sentinel := range []error{
		dossier.ErrInvalidDate,
		dossier.ErrMissingArgument,
		dossier.ErrDuplicateProperty,
		dossier.ErrNotFound,
		ErrPermissionDenied,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	slog.Error("Command failed", log.ErrAttr(err))

	return ErrCommandFailed
}

func (bot *Bot) onFactionInfo(ctx context.Context, _ *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) (*discordgo.MessageEmbed, error) {
	opts := OptionMap(interaction.ApplicationCommandData().Options)

	info, errLookup := bot.dossiers.LookupFaction(ctx, opts.String(OptFaction))
	if errLookup != nil {
		return nil, commandError(errLookup)
	}

	msgEmbed := NewEmbed("Faction Info: " + info.Faction)
	msgEmbed.Embed().
		SetColor(ColourInfo).
		AddField("Members", memberList(info.Members)).
		AddField("Locations", locationList(info.Headquarters, info.OtherAddresses))

	return msgEmbed.Message(), nil
}

func memberList(members []dossier.Member) string {
	if len(members) == 0 {
		return "No members listed."
	}

	entries := make([]string, 0, len(members))

	for _, member := range members {
		leader := ""
		if member.Leader {
			leader = " (Leader)"
		}

		entries = append(entries, fmt.Sprintf("**%s**%s\n📞 %s\n🏠 %s",
			member.Character, leader, orNA(member.Phones), orNA(member.Addresses)))
	}

	return strings.Join(entries, "\n\n")
}

func locationList(headquarters []string, others []string) string {
	if len(headquarters) == 0 && len(others) == 0 {
		return "No addresses listed."
	}

	var builder strings.Builder

	for _, address := range headquarters {
		builder.WriteString("🏠 **HQ:** " + address + "\n")
	}

	for _, address := range others {
		builder.WriteString("📍 " + address + "\n")
	}

	return builder.String()
}

func orNA(values []string) string {
	if len(values) == 0 {
		return "N/A"
	}

	return strings.Join(values, ", ")
}

func (bot *Bot) onAddProperty(ctx context.Context, _ *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) (*discordgo.MessageEmbed, error) {
	if errRole := requireRole(interaction, bot.config.ManagementRoleID); errRole != nil {
		return nil, errRole
	}

	var (
		opts         = OptionMap(interaction.ApplicationCommandData().Options)
		faction      = opts.String(OptFaction)
		address      = opts.String(OptAddress)
		propertyType = dossier.PropertyType(opts.String(OptType))
		confiscated  = opts.Bool(OptConfiscated)
	)

	errAdd := bot.dossiers.AddProperty(ctx, opts.String(OptDate), faction, address, propertyType, confiscated)
	if errAdd != nil {
		return nil, commandError(errAdd)
	}

	msgEmbed := NewEmbed("Property added for " + faction)
	msgEmbed.Embed().
		SetColor(ColourSuccess).
		AddField("Address", address).
		AddField("Type", string(propertyType)).
		AddField("Confiscated", yesNo(confiscated))

	return msgEmbed.Message(), nil
}

// onListProperties replies with the first page of the reward log and pushes
// any further pages as followup messages, so an oversized log never blows
// the embed size limit.
func (bot *Bot) onListProperties(ctx context.Context, session *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) (*discordgo.MessageEmbed, error) {
	if errRole := requireRole(interaction, bot.config.ManagementRoleID); errRole != nil {
		return nil, errRole
	}

	records, errList := bot.dossiers.ListProperties(ctx)
	if errList != nil {
		return nil, commandError(errList)
	}

	if len(records) == 0 {
		msgEmbed := NewEmbed("Property Rewards", "No property rewards recorded.")
		msgEmbed.Embed().SetColor(ColourInfo)

		return msgEmbed.Message(), nil
	}

	pages := paginateProperties(records, propertiesPerPage)

	msgEmbed := NewEmbed(fmt.Sprintf("Property Rewards (%d)", len(records)))
	msgEmbed.Embed().
		SetColor(ColourInfo).
		SetDescription(renderPropertyPage(pages[0]))

	if len(pages) > 1 {
		msgEmbed.Embed().AddField("Pages", fmt.Sprintf("1 of %d, remainder to follow", len(pages)))
	}

	for _, page := range pages[1:] {
		if _, errFollow := session.FollowupMessageCreate(interaction.Interaction, true, &discordgo.WebhookParams{
			Content: renderPropertyPage(page),
		}); errFollow != nil {
			slog.Error("Failed sending property page", log.ErrAttr(errFollow))
		}
	}

	return msgEmbed.Message(), nil
}

func (bot *Bot) onAddDossier(ctx context.Context, _ *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) (*discordgo.MessageEmbed, error) {
	if errRole := requireRole(interaction, bot.config.ManagementRoleID, bot.config.DossierRoleID); errRole != nil {
		return nil, errRole
	}

	data := interaction.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil, ErrCommandFailed
	}

	var (
		sub  = data.Options[0]
		opts = OptionMap(sub.Options)
	)

	switch Cmd(sub.Name) {
	case CmdAddPerson:
		return bot.addDossierPerson(ctx, opts)
	case CmdAddLocation:
		return bot.addDossierLocation(ctx, opts)
	default:
		return nil, ErrCommandFailed
	}
}

func (bot *Bot) addDossierPerson(ctx context.Context, opts CommandOptions) (*discordgo.MessageEmbed, error) {
	var (
		faction   = opts.String(OptFaction)
		character = opts.String(OptCharacter)
		leader    = opts.Bool(OptLeader)
	)

	errAdd := bot.dossiers.AddPerson(ctx, faction, character,
		opts.String(OptPhone), opts.String(OptPersonalAddress), leader)
	if errAdd != nil {
		return nil, commandError(errAdd)
	}

	msgEmbed := NewEmbed("Dossier person added")
	msgEmbed.Embed().
		SetColor(ColourSuccess).
		AddField("Faction", faction).
		AddField("Character", character).
		AddField("Leader", yesNo(leader))

	return msgEmbed.Message(), nil
}

func (bot *Bot) addDossierLocation(ctx context.Context, opts CommandOptions) (*discordgo.MessageEmbed, error) {
	var (
		faction = opts.String(OptFaction)
		address = opts.String(OptAddress)
		isHQ    = opts.Bool(OptIsHQ)
	)

	if errAdd := bot.dossiers.AddLocation(ctx, faction, address, isHQ); errAdd != nil {
		return nil, commandError(errAdd)
	}

	msgEmbed := NewEmbed("Dossier location added")
	msgEmbed.Embed().
		SetColor(ColourSuccess).
		AddField("Faction", faction).
		AddField("Address", address).
		AddField("HQ", yesNo(isHQ))

	return msgEmbed.Message(), nil
}

func (bot *Bot) onConfiscateProperty(ctx context.Context, _ *discordgo.Session,
	interaction *discordgo.InteractionCreate,
) (*discordgo.MessageEmbed, error) {
	if errRole := requireRole(interaction, bot.config.ManagementRoleID); errRole != nil {
		return nil, errRole
	}

	var (
		opts    = OptionMap(interaction.ApplicationCommandData().Options)
		faction = opts.String(OptFaction)
		address = opts.String(OptAddress)
	)

	result, errConfiscate := bot.dossiers.ConfiscateProperty(ctx, faction, address, opts.Bool(OptConfiscated))
	if errConfiscate != nil {
		return nil, commandError(errConfiscate)
	}

	if !result.Confirmed {
		msgEmbed := NewEmbed("No action taken",
			"Set the confiscated flag to true to confirm. Nothing was read or written.")
		msgEmbed.Embed().SetColor(ColourWarn)

		return msgEmbed.Message(), nil
	}

	msgEmbed := NewEmbed("Property confiscated")
	msgEmbed.Embed().
		SetColor(ColourSuccess).
		AddField("Faction", result.Record.Faction).
		AddField("Address", result.Record.Address).
		AddField("Date Given", result.Record.DateGiven).
		AddField("Date Confiscated", result.Record.DateConfiscated)

	return msgEmbed.Message(), nil
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}

	return "No"
}
