// Package config loads the application configuration from the environment.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/sirupsen/logrus"
)

// Config is the container for app configuration
type Config struct {
	// GithubAPIToken - bearer token sent with every request
	GithubAPIToken string `envconfig:"GITHUB_API_TOKEN"`

	// GithubGraphQLAddress - graphql endpoint with protocol
	GithubGraphQLAddress string `envconfig:"GITHUB_GRAPHQL_URL" default:"https://api.github.com/graphql"`

	// GithubRESTAddress - rest api base url, must end with a slash
	GithubRESTAddress string `envconfig:"GITHUB_REST_URL" default:"https://api.github.com/"`

	// RequestRate - max requests per second, 0 disables pacing
	RequestRate float64 `envconfig:"GHSTATS_REQUEST_RATE" default:"0"`

	// WaitSecondaryRateLimit - sleep through github secondary rate limits instead of failing
	WaitSecondaryRateLimit bool `envconfig:"GHSTATS_WAIT_SECONDARY_RATE_LIMIT" default:"false"`
}

// Load reads optional env files, then the process environment.
// Without arguments it looks for .env in the working directory.
func Load(logger logrus.FieldLogger, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.WithError(err).Debug("env file not loaded, using process environment")
	}

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return nil, &domain.ConfigError{Msg: "couldn't parse config", Err: err}
	}
	conf.normalize()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// normalize strips the whitespace env files and shell substitutions leave
// around the token and gives the REST base URL its trailing slash.
func (c *Config) normalize() {
	c.GithubAPIToken = strings.TrimSpace(c.GithubAPIToken)
	if c.GithubRESTAddress != "" && !strings.HasSuffix(c.GithubRESTAddress, "/") {
		c.GithubRESTAddress += "/"
	}
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if c.GithubAPIToken == "" {
		return &domain.ConfigError{Msg: "GITHUB_API_TOKEN environment variable is not set"}
	}
	if strings.TrimSpace(c.GithubAPIToken) != c.GithubAPIToken {
		return &domain.ConfigError{Msg: "GITHUB_API_TOKEN must not have surrounding whitespace"}
	}
	if c.RequestRate < 0 {
		return &domain.ConfigError{Msg: "GHSTATS_REQUEST_RATE must not be negative"}
	}
	return nil
}
