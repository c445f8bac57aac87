package authkit

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TokenConfig is the process-wide token configuration: loaded once at
// startup, read-only afterward, safe for unsynchronized concurrent reads.
type TokenConfig struct {
	Secret        string `mapstructure:"secret"`
	Issuer        string `mapstructure:"issuer"`
	Audience      string `mapstructure:"audience"`
	ExpiryMinutes int    `mapstructure:"expiry_minutes"`
	CookieName    string `mapstructure:"cookie_name"`
}

var _ Config = (*TokenConfig)(nil)

func (c *TokenConfig) GetSigningSecret() string { return c.Secret }
func (c *TokenConfig) GetIssuer() string        { return c.Issuer }
func (c *TokenConfig) GetAudience() string      { return c.Audience }
func (c *TokenConfig) GetExpiryMinutes() int    { return c.ExpiryMinutes }
func (c *TokenConfig) GetCookieName() string    { return c.CookieName }

// Validate checks the startup invariants. A missing secret, issuer, or
// audience is fatal; nothing recovers from it at request time.
func (c *TokenConfig) Validate() error {
	if c.Secret == "" {
		return ErrEmptySigningSecret
	}
	if c.Issuer == "" {
		return goerrors.New("token issuer is required", goerrors.CategoryValidation).
			WithTextCode("INVALID_CONFIGURATION")
	}
	if c.Audience == "" {
		return goerrors.New("token audience is required", goerrors.CategoryValidation).
			WithTextCode("INVALID_CONFIGURATION")
	}
	if c.ExpiryMinutes <= 0 {
		return goerrors.New("token expiry must be a positive number of minutes", goerrors.CategoryValidation).
			WithTextCode("INVALID_CONFIGURATION")
	}
	if c.CookieName == "" {
		return goerrors.New("cookie name is required", goerrors.CategoryValidation).
			WithTextCode("INVALID_CONFIGURATION")
	}
	return nil
}

// LoadConfig reads the token configuration from the environment (prefix
// AUTH_, e.g. AUTH_SECRET, AUTH_EXPIRY_MINUTES), with an optional .env file
// merged in first. Defaults cover the non-secret values only.
func LoadConfig(envFiles ...string) (*TokenConfig, error) {
	// Missing .env files are fine; the environment may carry everything.
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetEnvPrefix("AUTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("expiry_minutes", 15)
	v.SetDefault("cookie_name", "access_token")

	for _, key := range []string{"secret", "issuer", "audience", "expiry_minutes", "cookie_name"} {
		if err := v.BindEnv(key); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to bind configuration key")
		}
	}

	cfg := &TokenConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "failed to parse configuration").
			WithTextCode("INVALID_CONFIGURATION")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
