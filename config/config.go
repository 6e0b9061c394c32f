// Package config provides the toolhost configuration.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/go-playground/validator/v10"
)

// Defaults
const (
	DefaultToolsDir         = "config/tools"
	DefaultServiceMethod    = "run"
	DefaultAPIVersion       = "2024-10-01-preview"
	DefaultMaxTokens        = 2000
	DefaultRetryAttempts    = 3
	DefaultRetryInitial     = 4 * time.Second
	DefaultRetryMax         = 10 * time.Second
	DefaultQueryTimeout     = 300 * time.Second
	DefaultRedisPrefix      = "toolhost"
	DefaultWebSearchBaseURL = "https://api.tavily.com"
)

// Config of the tool host
type Config struct {
	Tools       Tools        `json:"tools" yaml:"tools"`
	Fabric      *Fabric      `json:"fabric,omitempty" yaml:"fabric,omitempty" validate:"omitempty"`
	Redis       *Redis       `json:"redis,omitempty" yaml:"redis,omitempty" validate:"omitempty"`
	WebSearch   *WebSearch   `json:"web_search,omitempty" yaml:"web_search,omitempty" validate:"omitempty"`
	AzureOpenAI *AzureOpenAI `json:"azure_openai,omitempty" yaml:"azure_openai,omitempty" validate:"omitempty"`
}

// Tools specifies the dynamic tool registration
type Tools struct {
	// Dir is the directory of tool schema files
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
	// Extension of schema files, `.json` by default
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	// ServiceMethod is the service method bound by tools, `run` by default
	ServiceMethod string `json:"service_method,omitempty" yaml:"service_method,omitempty"`
}

// Fabric specifies the data agent backend
type Fabric struct {
	TenantID     string `json:"tenant_id" yaml:"tenant_id" validate:"required"`
	DataAgentURL string `json:"data_agent_url" yaml:"data_agent_url" validate:"required,url"`
	// Token is the bearer token for the data agent API
	Token         string        `json:"token,omitempty" yaml:"token,omitempty"`
	QueryTimeout  time.Duration `json:"query_timeout,omitempty" yaml:"query_timeout,omitempty" validate:"gte=0"`
	RetryAttempts int           `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"gte=0"`
	RetryInitial  time.Duration `json:"retry_initial,omitempty" yaml:"retry_initial,omitempty" validate:"gte=0"`
	RetryMax      time.Duration `json:"retry_max,omitempty" yaml:"retry_max,omitempty" validate:"gte=0"`
}

// Redis specifies the key/value lookup store
type Redis struct {
	URL    string `json:"url" yaml:"url" validate:"required"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// WebSearch specifies the web search backend
type WebSearch struct {
	APIKey  string `json:"api_key" yaml:"api_key" validate:"required"`
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// AzureOpenAI specifies the LLM used by the agent runtime
type AzureOpenAI struct {
	Endpoint       string  `json:"endpoint" yaml:"endpoint" validate:"required,url"`
	APIKey         string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIVersion     string  `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	ChatDeployment string  `json:"chat_deployment" yaml:"chat_deployment" validate:"required"`
	Temperature    float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
	MaxTokens      int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty" validate:"gte=0"`
}

// Load returns configuration loaded from file,
// environment variables in the form of ${NAME} are expanded.
// Empty file returns default configuration.
func Load(file string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		if err := configloader.UnmarshalAndExpand(file, cfg); err != nil {
			return nil, errors.WithMessagef(err, "failed to load config %s", file)
		}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDefaults sets default values for omitted settings
func (c *Config) SetDefaults() {
	c.Tools.Dir = values.StringsCoalesce(c.Tools.Dir, DefaultToolsDir)
	c.Tools.ServiceMethod = values.StringsCoalesce(c.Tools.ServiceMethod, DefaultServiceMethod)

	if f := c.Fabric; f != nil {
		f.DataAgentURL = strings.TrimSpace(f.DataAgentURL)
		f.RetryAttempts = values.NumbersCoalesce(f.RetryAttempts, DefaultRetryAttempts)
		f.QueryTimeout = durationOr(f.QueryTimeout, DefaultQueryTimeout)
		f.RetryInitial = durationOr(f.RetryInitial, DefaultRetryInitial)
		f.RetryMax = durationOr(f.RetryMax, DefaultRetryMax)
	}
	if r := c.Redis; r != nil {
		r.Prefix = values.StringsCoalesce(r.Prefix, DefaultRedisPrefix)
	}
	if w := c.WebSearch; w != nil {
		w.BaseURL = values.StringsCoalesce(w.BaseURL, DefaultWebSearchBaseURL)
	}
	if a := c.AzureOpenAI; a != nil {
		a.Endpoint = strings.TrimRight(a.Endpoint, "/")
		a.APIVersion = values.StringsCoalesce(a.APIVersion, DefaultAPIVersion)
		a.MaxTokens = values.NumbersCoalesce(a.MaxTokens, DefaultMaxTokens)
	}
}

// Validate returns error if the configuration is invalid
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.WithMessage(err, "invalid configuration")
	}
	return nil
}

func durationOr(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return d
}
