package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverRedis  = "redis"

	TimerCountdown = "countdown"
	TimerStopwatch = "stopwatch"
)

// Config holds application configuration loaded from defaults, an optional
// YAML file and HDT_* environment variables.
type Config struct {
	DataDir    string     `mapstructure:"-"`
	DBPath     string     `mapstructure:"-"`
	Env        string     `mapstructure:"env"` // development or production
	Log        Log        `mapstructure:"log"`
	Storage    Storage    `mapstructure:"storage"`
	Curriculum Curriculum `mapstructure:"curriculum"`
	Timer      Timer      `mapstructure:"timer"`
	Progress   Progress   `mapstructure:"progress"`
	Export     Export     `mapstructure:"export"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty means stderr
}

type Storage struct {
	Driver string `mapstructure:"driver"` // sqlite, file or redis
	Key    string `mapstructure:"key"`    // fixed key holding the progress record
	Redis  Redis  `mapstructure:"redis"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

type Curriculum struct {
	Path string `mapstructure:"path"` // optional YAML replacing the embedded curriculum
}

type Timer struct {
	Mode          string        `mapstructure:"mode"`
	FocusDuration time.Duration `mapstructure:"focus_duration"`
	SessionXP     int           `mapstructure:"session_xp"`
	SessionHours  float64       `mapstructure:"session_hours"`
}

type Progress struct {
	FollowCalendar bool `mapstructure:"follow_calendar"`
}

type Export struct {
	Dir string `mapstructure:"dir"`
}

// DefaultDataDir returns ~/.hdt, or .hdt when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".hdt"
	}
	return filepath.Join(home, ".hdt")
}

// Load builds the configuration for dataDir. configFile may be empty, in which
// case <dataDir>/config.yaml is read when present.
func Load(dataDir, configFile string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("env", "production")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.key", "hdt:progress")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("curriculum.path", "")
	v.SetDefault("timer.mode", TimerCountdown)
	v.SetDefault("timer.focus_duration", "25m")
	v.SetDefault("timer.session_xp", 100)
	v.SetDefault("timer.session_hours", 0.5)
	v.SetDefault("progress.follow_calendar", false)
	v.SetDefault("export.dir", ".")

	v.SetEnvPrefix("HDT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.DataDir = dataDir
	cfg.DBPath = filepath.Join(dataDir, "hdt.db")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage key is required")
	}
	switch c.Timer.Mode {
	case TimerCountdown, TimerStopwatch:
	default:
		return fmt.Errorf("unsupported timer mode %q", c.Timer.Mode)
	}
	if c.Timer.FocusDuration <= 0 {
		return fmt.Errorf("timer focus duration must be positive")
	}
	if c.Timer.SessionXP < 0 || c.Timer.SessionHours < 0 {
		return fmt.Errorf("timer session awards must be non-negative")
	}
	return nil
}

// ActiveSessionPath is where a running or paused timer is snapshotted.
func (c Config) ActiveSessionPath() string {
	return filepath.Join(c.DataDir, "active-session.json")
}
