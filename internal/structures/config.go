package structures

import "time"

type Persistence struct {
	FilePath    string `yaml:"filePath" validate:"required|filePath"`
	Compression string `yaml:"compression" validate:"required|in:zstd,gzip,none"`
	OnCorrupt   string `yaml:"onCorrupt" validate:"required|in:fail,empty"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|filePath"`
}

type BirthdaysConfig struct {
	HorizonDays int `yaml:"horizonDays" validate:"min:0|max:366"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	TextFile string `yaml:"textFile"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Birthdays   BirthdaysConfig `yaml:"birthdays"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
