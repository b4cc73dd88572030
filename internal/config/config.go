package config

import (
	"os"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

// Environment variables read at startup.
const (
	EnvCredentialsFile = "BLOGGER_CREDENTIALS_FILE"
	EnvTokenFile       = "BLOGGER_TOKEN_FILE"
	EnvBlogID          = "BLOGGER_BLOG_ID"
)

// Config holds the environment-driven settings for one run. It is read once
// at startup and never changes afterwards.
type Config struct {
	CredentialsFile string
	TokenFile       string
	BlogID          string
}

// Load reads the BLOGGER_* environment variables into a Config.
func Load() (*Config, error) {
	cfg := &Config{
		CredentialsFile: os.Getenv(EnvCredentialsFile),
		TokenFile:       os.Getenv(EnvTokenFile),
		BlogID:          os.Getenv(EnvBlogID),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	return v.ValidateStruct(&c,
		v.Field(&c.CredentialsFile, v.Required.Error("set "+EnvCredentialsFile)),
		v.Field(&c.TokenFile, v.Required.Error("set "+EnvTokenFile)),
		v.Field(&c.BlogID, v.Required.Error("set "+EnvBlogID)),
	)
}
