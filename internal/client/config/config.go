package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SMARTTASK_API_URL.
const EnvPrefix = "SMARTTASK"

// Config holds runtime settings for the smarttask CLI.
//
// Fields:
//   - APIBaseURL: base URL of the task and AI endpoints.
//   - AuthBaseURL: base URL of /api/auth/*; empty means APIBaseURL.
//   - DBPath: SQLite file holding the session token and preferences.
//   - RequestTimeout: per-request deadline of remote calls.
//   - DraftResetDelay: how long a voice draft survives unsubmitted.
type Config struct {
	APIBaseURL      string        `mapstructure:"api_url"`
	AuthBaseURL     string        `mapstructure:"auth_url"`
	DBPath          string        `mapstructure:"db"`
	RequestTimeout  time.Duration `mapstructure:"timeout"`
	DraftResetDelay time.Duration `mapstructure:"draft_reset_delay"`
	Debug           bool          `mapstructure:"debug"`
	Forms           bool          `mapstructure:"forms"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.AuthBaseURL = ""
	c.DBPath = "smarttask.db"
	c.RequestTimeout = 10 * time.Second
	c.DraftResetDelay = 5 * time.Second
	c.Debug = false
	c.Forms = false
}

// key binds a viper key to its command-line flag.
type key struct {
	name string
	flag string
}

var keys = []key{
	{"api_url", "api-url"},
	{"auth_url", "auth-url"},
	{"db", "db"},
	{"timeout", "timeout"},
	{"draft_reset_delay", "draft-reset-delay"},
	{"debug", "debug"},
	{"forms", "forms"},
}

// RegisterFlags declares the configuration flags on fs with default values.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP("config", "c", "", "path to a JSON or YAML config file")
	fs.StringP("api-url", "a", d.APIBaseURL, "base URL of the task API")
	fs.String("auth-url", d.AuthBaseURL, "base URL of the auth API (defaults to --api-url)")
	fs.String("db", d.DBPath, "local state database file")
	fs.Duration("timeout", d.RequestTimeout, "per-request timeout")
	fs.Duration("draft-reset-delay", d.DraftResetDelay, "how long a voice draft is kept unsubmitted")
	fs.Bool("debug", d.Debug, "enable debug logging")
	fs.Bool("forms", d.Forms, "use interactive forms when attached to a terminal")
}

// Load builds a Config from defaults, the optional config file named by the
// --config flag, SMARTTASK_* environment variables and flags set on fs.
// Later sources take precedence over earlier ones.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	var d Config
	d.LoadDefaults()
	v.SetDefault("api_url", d.APIBaseURL)
	v.SetDefault("auth_url", d.AuthBaseURL)
	v.SetDefault("db", d.DBPath)
	v.SetDefault("timeout", d.RequestTimeout)
	v.SetDefault("draft_reset_delay", d.DraftResetDelay)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("forms", d.Forms)

	if fs != nil {
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
		for _, k := range keys {
			if f := fs.Lookup(k.flag); f != nil {
				if err := v.BindPFlag(k.name, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", k.flag, err)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.AuthBaseURL = strings.TrimRight(cfg.AuthBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if err := validateURL("api url", c.APIBaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.AuthBaseURL != "" {
		if err := validateURL("auth url", c.AuthBaseURL); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db path is empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.DraftResetDelay <= 0 {
		errs = append(errs, fmt.Errorf("draft reset delay must be positive, got %s", c.DraftResetDelay))
	}
	return errors.Join(errs...)
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s %q is not an absolute URL", name, raw)
	}
	return nil
}

// AuthURL returns the effective base URL of the auth endpoints.
func (c *Config) AuthURL() string {
	if c.AuthBaseURL != "" {
		return c.AuthBaseURL
	}
	return c.APIBaseURL
}
