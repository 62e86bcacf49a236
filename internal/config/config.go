// Package config loads the static bot configuration from a yaml file and the
// environment. Anything defined in the config file or env overrides the
// defaults registered in init.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var (
	ErrReadConfig      = errors.New("failed to read config file")
	ErrFormatConfig    = errors.New("invalid config file format")
	ErrMissingValue    = errors.New("required config value missing")
	errHomeDir         = errors.New("failed to locate home directory")
	errInvalidLogLevel = errors.New("invalid log level")
)

type runMode string

const (
	// Release is production mode, minimal logging.
	Release runMode = "release"
	// Debug has much more logging.
	Debug runMode = "debug"
)

func (rm runMode) String() string {
	return string(rm)
}

type generalConfig struct {
	Mode runMode `mapstructure:"mode"`
}

type discordConfig struct {
	Token            string `mapstructure:"token"`
	AppID            string `mapstructure:"app_id"`
	GuildID          string `mapstructure:"guild_id"`
	ManagementRoleID string `mapstructure:"management_role_id"`
	DossierRoleID    string `mapstructure:"dossier_role_id"`
	Status           string `mapstructure:"status"`
}

// sheetsConfig describes where the two dossier tables live. The column spans
// are configurable because the sheet layout has shifted between deployments.
type sheetsConfig struct {
	SpreadsheetID     string `mapstructure:"spreadsheet_id"`
	CredentialsFile   string `mapstructure:"credentials_file"`
	DossierSheet      string `mapstructure:"dossier_sheet"`
	RewardsSheet      string `mapstructure:"rewards_sheet"`
	PersonColumns     string `mapstructure:"person_columns"`
	LocationColumns   string `mapstructure:"location_columns"`
	RewardColumns     string `mapstructure:"reward_columns"`
	MaxRows           int    `mapstructure:"max_rows"`
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
}

type cacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type logConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

type Config struct {
	General generalConfig `mapstructure:"general"`
	Discord discordConfig `mapstructure:"discord"`
	Sheets  sheetsConfig  `mapstructure:"sheets"`
	Cache   cacheConfig   `mapstructure:"cache"`
	Log     logConfig     `mapstructure:"log"`
}

// Read reads in the config file and ENV variables if set.
func Read(cfgFiles ...string) (Config, error) {
	var config Config

	home, errHome := homedir.Dir()
	if errHome != nil {
		return config, errors.Join(errHome, errHomeDir)
	}

	viper.AddConfigPath(home)
	viper.AddConfigPath(".")
	viper.SetConfigName("meridian")
	viper.SetEnvPrefix("meridian")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for _, cfgFile := range cfgFiles {
		viper.SetConfigFile(cfgFile)
		if errRead := viper.ReadInConfig(); errRead != nil {
			return config, errors.Join(errRead, ErrReadConfig)
		}
	}

	if errUnmarshal := viper.Unmarshal(&config); errUnmarshal != nil {
		return config, errors.Join(errUnmarshal, ErrFormatConfig)
	}

	if errValidate := config.validate(); errValidate != nil {
		return config, errValidate
	}

	return config, nil
}

func (c Config) validate() error {
	for key, value := range map[string]string{
		"discord.token":         c.Discord.Token,
		"discord.app_id":        c.Discord.AppID,
		"discord.guild_id":      c.Discord.GuildID,
		"sheets.spreadsheet_id": c.Sheets.SpreadsheetID,
	} {
		if value == "" {
			return errors.Join(errors.New(key), ErrMissingValue)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return errInvalidLogLevel
	}
}

func init() {
	viper.SetDefault("general.mode", "release")

	viper.SetDefault("discord.token", "")
	viper.SetDefault("discord.app_id", "")
	viper.SetDefault("discord.guild_id", "")
	viper.SetDefault("discord.management_role_id", "")
	viper.SetDefault("discord.dossier_role_id", "")
	viper.SetDefault("discord.status", "Waiting for associate request...")

	viper.SetDefault("sheets.spreadsheet_id", "")
	viper.SetDefault("sheets.credentials_file", "credentials.json")
	viper.SetDefault("sheets.dossier_sheet", "Sheet1")
	viper.SetDefault("sheets.rewards_sheet", "PropertyRewards")
	viper.SetDefault("sheets.person_columns", "A:E")
	viper.SetDefault("sheets.location_columns", "F:H")
	viper.SetDefault("sheets.reward_columns", "A:F")
	viper.SetDefault("sheets.max_rows", 999)
	viper.SetDefault("sheets.requests_per_second", 1)

	viper.SetDefault("cache.ttl", time.Minute*15)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.sentry_dsn", "")
}
