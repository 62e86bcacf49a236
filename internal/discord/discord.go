// Package discord exposes the dossier operations as guild slash commands.
// It owns the session lifecycle, command registration, the autocomplete
// responder and the single place where handler failures become user replies.
package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

var (
	ErrConfig            = errors.New("invalid discord configuration")
	ErrCreate            = errors.New("failed to connect to discord")
	ErrOpen              = errors.New("failed to open discord connection")
	ErrOverwriteCommands = errors.New("failed to bulk overwrite application commands")
	ErrDuplicateCommand  = errors.New("duplicate command handler")
	ErrMessageSend       = errors.New("failed sending success response for interaction")
	ErrCommandFailed     = errors.New("command failed")
	ErrPermissionDenied  = errors.New("you do not have permission to use this command")
)

type Cmd string

const (
	CmdFactionInfo    Cmd = "factioninfo"
	CmdAddProperty    Cmd = "addproperty"
	CmdListProperties Cmd = "listproperties"
	CmdAddDossier     Cmd = "adddossier"
	CmdAddPerson      Cmd = "person"
	CmdAddLocation    Cmd = "location"
	CmdConfiscate     Cmd = "confiscateproperty"
)

const (
	OptFaction         = "faction"
	OptDate            = "date"
	OptAddress         = "address"
	OptType            = "type"
	OptConfiscated     = "confiscated"
	OptCharacter       = "character"
	OptPhone           = "phone"
	OptPersonalAddress = "personaladdress"
	OptLeader          = "leader"
	OptIsHQ            = "is_hq"
)

type Config struct {
	Token            string
	AppID            string
	GuildID          string
	ManagementRoleID string
	DossierRoleID    string
	Status           string
}

type SlashCommandHandler func(ctx context.Context, session *discordgo.Session,
	interaction *discordgo.InteractionCreate) (*discordgo.MessageEmbed, error)
