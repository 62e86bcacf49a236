package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/riskecrp/meridian-bot/internal/dossier"
	"github.com/riskecrp/meridian-bot/internal/log"
)

const commandTimeout = time.Second * 30

type Bot struct {
	session         *discordgo.Session
	isReady         atomic.Bool
	commandHandlers map[Cmd]SlashCommandHandler
	config          Config
	dossiers        *dossier.Dossiers
	factions        *dossier.FactionCache
}

func NewBot(config Config, dossiers *dossier.Dossiers, factions *dossier.FactionCache) (*Bot, error) {
	if config.AppID == "" || config.GuildID == "" || config.Token == "" {
		return nil, ErrConfig
	}

	bot := &Bot{
		commandHandlers: map[Cmd]SlashCommandHandler{},
		config:          config,
		dossiers:        dossiers,
		factions:        factions,
	}

	for cmd, handler := range map[Cmd]SlashCommandHandler{
		CmdFactionInfo:    bot.onFactionInfo,
		CmdAddProperty:    bot.onAddProperty,
		CmdListProperties: bot.onListProperties,
		CmdAddDossier:     bot.onAddDossier,
		CmdConfiscate:     bot.onConfiscateProperty,
	} {
		if errRegister := bot.RegisterHandler(cmd, handler); errRegister != nil {
			return nil, errRegister
		}
	}

	return bot, nil
}

func (bot *Bot) RegisterHandler(cmd Cmd, handler SlashCommandHandler) error {
	if _, found := bot.commandHandlers[cmd]; found {
		return ErrDuplicateCommand
	}

	bot.commandHandlers[cmd] = handler

	return nil
}

func (bot *Bot) Start(_ context.Context) error {
	session, errNewSession := discordgo.New("Bot " + bot.config.Token)
	if errNewSession != nil {
		return errors.Join(errNewSession, ErrCreate)
	}

	session.UserAgent = "meridian-bot (https://github.com/riskecrp/meridian-bot)"
	session.Identify.Intents |= discordgo.IntentsGuilds
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onConnect)
	session.AddHandler(bot.onDisconnect)
	session.AddHandler(bot.onInteractionCreate)

	bot.session = session

	if errSessionOpen := session.Open(); errSessionOpen != nil {
		return errors.Join(errSessionOpen, ErrOpen)
	}

	return nil
}

func (bot *Bot) Shutdown() {
	if bot.session != nil {
		defer log.Closer(bot.session)
	}
}

func (bot *Bot) onReady(session *discordgo.Session, _ *discordgo.Ready) {
	slog.Info("Discord state changed", slog.String("state", "ready"), slog.String("username",
		fmt.Sprintf("%v#%v", session.State.User.Username, session.State.User.Discriminator)))
}

func (bot *Bot) onConnect(_ *discordgo.Session, _ *discordgo.Connect) {
	if errRegister := bot.registerSlashCommands(); errRegister != nil {
		slog.Error("Failed to register discord slash commands", log.ErrAttr(errRegister))
	}

	status := discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name: bot.config.Status,
				Type: discordgo.ActivityTypeWatching,
			},
		},
		Status: "online",
	}
	if errUpdateStatus := bot.session.UpdateStatusComplex(status); errUpdateStatus != nil {
		slog.Error("Failed to update status", log.ErrAttr(errUpdateStatus))
	}

	slog.Info("Discord state changed", slog.String("state", "connected"))

	bot.isReady.Store(true)
}

func (bot *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	bot.isReady.Store(false)

	slog.Info("Discord state changed", slog.String("state", "disconnected"))
}

// onInteractionCreate routes every inbound interaction. Commands are
// acknowledged with a deferred response first since every handler performs at
// least one remote read and discord times out commands that stay silent for
// more than a couple of seconds.
func (bot *Bot) onInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		bot.onAutocomplete(session, interaction)
	case discordgo.InteractionApplicationCommand:
		bot.onCommand(session, interaction)
	default:
	}
}

func (bot *Bot) onCommand(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	var (
		data    = interaction.ApplicationCommandData()
		command = Cmd(data.Name)
	)

	handler, handlerFound := bot.commandHandlers[command]
	if !handlerFound {
		return
	}

	initialResponse := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}

	if errRespond := session.InteractionRespond(interaction.Interaction, initialResponse); errRespond != nil {
		if _, errFollow := session.FollowupMessageCreate(interaction.Interaction, true, &discordgo.WebhookParams{
			Content: errRespond.Error(),
		}); errFollow != nil {
			slog.Error("Failed sending error response for interaction", log.ErrAttr(errFollow))
		}

		return
	}

	commandCtx, cancelCommand := context.WithTimeout(context.TODO(), commandTimeout)
	defer cancelCommand()

	response, errHandleCommand := handler(commandCtx, session, interaction)
	if errHandleCommand != nil || response == nil {
		slog.Error("Command handler failed", slog.String("command", string(command)), log.ErrAttr(errHandleCommand))

		if _, errFollow := session.FollowupMessageCreate(interaction.Interaction, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{ErrorMessage(string(command), errHandleCommand)},
		}); errFollow != nil {
			slog.Error("Failed sending error response for interaction", log.ErrAttr(errFollow))
		}

		return
	}

	if errSend := bot.sendInteractionResponse(session, interaction.Interaction, response); errSend != nil {
		slog.Error("Failed sending success response for interaction", log.ErrAttr(errSend))
	}
}

func (bot *Bot) sendInteractionResponse(session *discordgo.Session, interaction *discordgo.Interaction,
	response *discordgo.MessageEmbed,
) error {
	embeds := []*discordgo.MessageEmbed{response}

	_, errRespond := session.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Embeds: &embeds,
	})
	if errRespond != nil {
		if _, errFollow := session.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
			Content: "Something went wrong",
		}); errFollow != nil {
			return errors.Join(errFollow, ErrMessageSend)
		}
	}

	return nil
}
