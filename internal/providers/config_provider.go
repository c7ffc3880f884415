package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"addrbook/internal/structures"
)

const (
	AppName         = "AddressBook"
	DefaultDataFile = "addressbook.dat"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("persistence.filePath", DefaultDataFile)
	v.SetDefault("persistence.compression", "zstd")
	v.SetDefault("persistence.onCorrupt", "fail")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0o644)
	v.SetDefault("logger.dir", "logs")
	v.SetDefault("birthdays.horizonDays", 7)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 1)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textFile", "")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("persistence.filePath", "ADDRBOOK_FILE")
	v.BindEnv("persistence.compression", "ADDRBOOK_COMPRESSION")
	v.BindEnv("logger.level", "ADDRBOOK_LOG_LEVEL")
	v.BindEnv("birthdays.horizonDays", "ADDRBOOK_HORIZON_DAYS")
	v.BindEnv("metrics.textFile", "ADDRBOOK_METRICS_FILE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || flags.ConfigRequired {
			return nil, fmt.Errorf("unable to read config %s: %w", flags.ConfigPath, err)
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if flags.FilePath != "" {
		conf.Persistence.FilePath = flags.FilePath
	}
	if conf.Metrics.TextFile != "" {
		conf.Metrics.Enabled = true
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
