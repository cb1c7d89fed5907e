// Package config loads twctl settings from defaults, an optional config file,
// an optional .env file in the working directory, and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/twctl/twctl/internal/apperrors"
)

// DefaultConfigDir is the directory under the user's home searched for twctl.yaml.
const DefaultConfigDir = ".twctl"

// DefaultConfigName is the config file name (without extension).
const DefaultConfigName = "twctl"

// Default Twilio API base URLs.
const (
	DefaultTrustHubURL  = "https://trusthub.twilio.com"
	DefaultMessagingURL = "https://messaging.twilio.com"
	DefaultCoreURL      = "https://api.twilio.com"
)

// Config holds all twctl configuration.
type Config struct {
	LogLevel    string `mapstructure:"logLevel"`
	LogFile     string `mapstructure:"logFile"`
	CallLogPath string `mapstructure:"callLogPath"` // fallback for summary/visualize
	ListLimit   int    `mapstructure:"listLimit"`   // max records per account-wide listing
	NoColor     bool   `mapstructure:"noColor"`
	Twilio      struct {
		AccountSID string `mapstructure:"accountSID"`
		AuthToken  string `mapstructure:"authToken"`
	} `mapstructure:"twilio"`
	API struct {
		TrustHubURL  string `mapstructure:"trusthubURL"`
		MessagingURL string `mapstructure:"messagingURL"`
		CoreURL      string `mapstructure:"coreURL"`
	} `mapstructure:"api"`
	HTTP struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"http"`
}

// Load reads configuration. When path is non-empty it must name a readable
// config file; otherwise twctl.yaml is searched for in ".", $HOME/.twctl and
// /etc/twctl, and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logLevel", "warn")
	v.SetDefault("listLimit", 200)
	v.SetDefault("noColor", false)
	v.SetDefault("api.trusthubURL", DefaultTrustHubURL)
	v.SetDefault("api.messagingURL", DefaultMessagingURL)
	v.SetDefault("api.coreURL", DefaultCoreURL)
	v.SetDefault("http.timeout", 20*time.Second)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("$HOME", DefaultConfigDir))
		v.AddConfigPath("/etc/twctl")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	dotenv, err := readDotEnv(".env")
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix("TWCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, Config{})

	// Read directly from ENV for credentials, matching Twilio's own tooling.
	// A variable already set in the environment wins over the .env file.
	if sid := getenv(dotenv, "TWILIO_ACCOUNT_SID"); sid != "" {
		v.Set("twilio.accountSID", sid)
	}
	if token := getenv(dotenv, "TWILIO_AUTH_TOKEN"); token != "" {
		v.Set("twilio.authToken", token)
	}
	if lvl := getenv(dotenv, "LOG_LEVEL"); lvl != "" {
		v.Set("logLevel", lvl)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if cfg.HTTP.Timeout <= 0 {
		return nil, fmt.Errorf("http.timeout must be positive, got %s: %w", cfg.HTTP.Timeout, apperrors.ErrValidation)
	}

	return &cfg, nil
}

// RequireCredentials returns an ErrAuth-wrapped error naming both variables
// when either Twilio credential is missing.
func (c *Config) RequireCredentials() error {
	var missing []string
	if c.Twilio.AccountSID == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if c.Twilio.AuthToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%s must be set in the environment, a .env file, or twctl.yaml (missing %s): %w",
		"TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN", strings.Join(missing, ", "), apperrors.ErrAuth)
}

// readDotEnv reads a dotenv file into a map keyed by lowercased variable
// name. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return map[string]string{}, nil
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	out := make(map[string]string)
	for _, key := range env.AllKeys() {
		out[key] = env.GetString(key)
	}
	return out, nil
}

func getenv(dotenv map[string]string, name string) string {
	if val, ok := os.LookupEnv(name); ok && val != "" {
		return val
	}
	return dotenv[strings.ToLower(name)]
}

// bindEnvs recursively binds environment variables to config struct fields
func bindEnvs(v *viper.Viper, cfg interface{}, parts ...string) {
	ifv := reflect.ValueOf(cfg)
	ift := reflect.TypeOf(cfg)
	for i := 0; i < ift.NumField(); i++ {
		fieldVal := ifv.Field(i)
		fieldType := ift.Field(i)

		tag := fieldType.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}

		path := append(append([]string{}, parts...), tag)
		key := strings.Join(path, ".")

		if fieldType.Type.Kind() == reflect.Struct {
			bindEnvs(v, fieldVal.Interface(), path...)
			continue
		}

		_ = v.BindEnv(key)
	}
}
