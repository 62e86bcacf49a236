package discord_test

import (
	"testing"

	"github.com/riskecrp/meridian-bot/internal/discord"
	"github.com/stretchr/testify/require"
)

func testConfig() discord.Config {
	return discord.Config{
		Token:            "token",
		AppID:            "app",
		GuildID:          "guild",
		ManagementRoleID: "111",
		DossierRoleID:    "222",
		Status:           "Waiting for associate request...",
	}
}

func TestNewBot(t *testing.T) {
	bot, errBot := discord.NewBot(testConfig(), nil, nil)
	require.NoError(t, errBot)
	require.NotNil(t, bot)
}

func TestNewBotInvalidConfig(t *testing.T) {
	conf := testConfig()
	conf.Token = ""

	_, errBot := discord.NewBot(conf, nil, nil)
	require.ErrorIs(t, errBot, discord.ErrConfig)
}

func TestRegisterHandlerDuplicate(t *testing.T) {
	bot, errBot := discord.NewBot(testConfig(), nil, nil)
	require.NoError(t, errBot)

	errRegister := bot.RegisterHandler(discord.CmdFactionInfo, nil)
	require.ErrorIs(t, errRegister, discord.ErrDuplicateCommand)
}
