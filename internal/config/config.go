package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "LIFTTRACK"

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Local    LocalConfig    `mapstructure:"local"`
	Log      LogConfig      `mapstructure:"log"`
	Workout  WorkoutConfig  `mapstructure:"workout"`
	History  HistoryConfig  `mapstructure:"history"`
}

type DatabaseConfig struct {
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	LinkExpiration  time.Duration `mapstructure:"link_expiration"`
}

// Enabled reports whether enough is configured to reach a bucket.
func (c S3Config) Enabled() bool {
	return c.BucketName != "" && c.Region != ""
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LocalConfig points at the on-device store for the workout snapshot.
type LocalConfig struct {
	DataDir     string `mapstructure:"data_dir"`
	SnapshotKey string `mapstructure:"snapshot_key"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"`
	JSON     bool   `mapstructure:"json"`
	ToStdout bool   `mapstructure:"to_stdout"`
}

type WorkoutConfig struct {
	DefaultRestSeconds int           `mapstructure:"default_rest_seconds"`
	SaveAttempts       int           `mapstructure:"save_attempts"`
	SaveTimeout        time.Duration `mapstructure:"save_timeout"`
}

// HistoryConfig bounds the exercise history scan.
type HistoryConfig struct {
	Window int `mapstructure:"window"` // most recent sessions inspected
	Limit  int `mapstructure:"limit"`  // entries returned
}

// DefaultDataDir is $HOME/.lifttrack, or ./.lifttrack without a home dir.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lifttrack"
	}
	return filepath.Join(home, ".lifttrack")
}

// LoadConfig reads config.yaml from path (and the data dir), then applies
// LIFTTRACK_ environment overrides, e.g. LIFTTRACK_DATABASE_URI.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(DefaultDataDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// database.uri -> LIFTTRACK_DATABASE_URI
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "lifttrack")
	v.SetDefault("database.connect_timeout", "10s")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.link_expiration", "15m")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "720h")

	v.SetDefault("local.data_dir", DefaultDataDir())
	v.SetDefault("local.snapshot_key", "lifttrack-workout")

	v.SetDefault("log.level", "warn") // stderr is shared with the interactive CLI
	v.SetDefault("log.file", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.to_stdout", false)

	v.SetDefault("workout.default_rest_seconds", 90)
	v.SetDefault("workout.save_attempts", 4)
	v.SetDefault("workout.save_timeout", "30s")

	v.SetDefault("history.window", 100)
	v.SetDefault("history.limit", 20)
}
