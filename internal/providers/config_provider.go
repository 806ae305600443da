package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"surveysync/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "SURVEYSYNC_LOG_LEVEL")
	v.BindEnv("account.appId", "SURVEYSYNC_APP_ID")
	v.BindEnv("account.extUserId", "SURVEYSYNC_EXT_USER_ID")
	v.BindEnv("account.secureKey", "SURVEYSYNC_SECURE_KEY")
	v.BindEnv("sync.pollInterval", "SURVEYSYNC_POLL_INTERVAL")
	v.BindEnv("cache.enabled", "SURVEYSYNC_CACHE_ENABLED")
	v.BindEnv("cache.size", "SURVEYSYNC_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	conf.ApplyDefaults()

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SurveySync"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
