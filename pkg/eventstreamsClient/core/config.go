package core

import (
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	DefaultTimeout          = 10 * time.Second
	DefaultMaxRetries       = 4
	DefaultMinRetryInterval = 100 * time.Millisecond
	DefaultMaxRetryInterval = 30 * time.Second
)

// ServiceOptions configures a service. It is read once at construction and never
// mutated afterwards.
type ServiceOptions struct {
	URL           string
	Authenticator Authenticator
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Timeout bounds every call that does not set its own, 0 means DefaultTimeout.
	Timeout time.Duration
	// Retry is nil when retries are disabled.
	Retry *RetryOptions
	// RateLimit is the maximum number of requests per second, 0 disables limiting.
	RateLimit float64
	RateBurst int
	// Headers are sent with every request, per-call headers take precedence.
	Headers map[string]string
}

type RetryOptions struct {
	MaxRetries  int
	MinInterval time.Duration
	MaxInterval time.Duration
}

func (r *RetryOptions) withDefaults() *RetryOptions {
	out := *r
	if out.MaxRetries <= 0 {
		out.MaxRetries = DefaultMaxRetries
	}
	if out.MinInterval <= 0 {
		out.MinInterval = DefaultMinRetryInterval
	}
	if out.MaxInterval <= 0 {
		out.MaxInterval = DefaultMaxRetryInterval
	}
	if out.MinInterval > out.MaxInterval {
		out.MinInterval = out.MaxInterval
	}
	return &out
}

// CallOptions is embedded in every operation's options struct.
type CallOptions struct {
	// Headers override service and operation headers on key collision.
	Headers map[string]string `json:"-"`
	// Timeout overrides ServiceOptions.Timeout for this call.
	Timeout time.Duration `json:"-"`
}

type environmentConfig struct {
	URL           string        `mapstructure:"URL"`
	AuthType      string        `mapstructure:"AUTH_TYPE"`
	Username      string        `mapstructure:"USERNAME"`
	Password      string        `mapstructure:"PASSWORD"`
	APIKey        string        `mapstructure:"APIKEY"`
	BearerToken   string        `mapstructure:"BEARER_TOKEN"`
	EnableRetries bool          `mapstructure:"ENABLE_RETRIES"`
	MaxRetries    int           `mapstructure:"MAX_RETRIES"`
	RetryInterval time.Duration `mapstructure:"RETRY_INTERVAL"`
	Timeout       time.Duration `mapstructure:"TIMEOUT"`
}

// ConfigFromEnvironment builds ServiceOptions from <SERVICE>_* environment
// variables, e.g. ADMINREST_URL and ADMINREST_APIKEY for serviceName "adminrest".
// Durations accept Go syntax ("30s") or plain seconds ("30").
func ConfigFromEnvironment(serviceName string) (*ServiceOptions, error) {
	prefix := strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"

	raw := make(map[string]interface{})
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, prefix) {
			raw[strings.TrimPrefix(key, prefix)] = value
		}
	}

	var cfg environmentConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, err
	}
	if err = decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("reading %s* environment: %w", prefix, err)
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("%sURL: %w", prefix, ErrServiceURLMissing)
	}
	authenticator, err := cfg.authenticator()
	if err != nil {
		return nil, fmt.Errorf("%sAUTH_TYPE: %w", prefix, err)
	}

	options := &ServiceOptions{
		URL:           cfg.URL,
		Authenticator: authenticator,
		Timeout:       cfg.Timeout,
	}
	if cfg.EnableRetries {
		options.Retry = &RetryOptions{
			MaxRetries:  cfg.MaxRetries,
			MaxInterval: cfg.RetryInterval,
		}
	}
	return options, nil
}

func (c environmentConfig) authenticator() (Authenticator, error) {
	authType := strings.ToLower(c.AuthType)
	if authType == "" {
		switch {
		case c.APIKey != "" || c.Username != "":
			authType = AuthTypeBasic
		case c.BearerToken != "":
			authType = AuthTypeBearerToken
		default:
			return nil, ErrAuthenticatorMissing
		}
	}

	switch authType {
	case AuthTypeBasic:
		if c.APIKey != "" {
			return NewAPIKeyAuthenticator(c.APIKey)
		}
		return NewBasicAuthenticator(c.Username, c.Password)
	case AuthTypeBearerToken:
		return NewBearerTokenAuthenticator(c.BearerToken)
	case AuthTypeNoAuth:
		return NoAuthAuthenticator{}, nil
	}
	return nil, fmt.Errorf("unsupported authentication type %q", c.AuthType)
}

func secondsToDurationHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	if seconds, err := strconv.Atoi(data.(string)); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return data, nil
}
