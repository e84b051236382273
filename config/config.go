// Package config loads the typed application configuration from a YAML
// file with environment-variable overrides, through koanf.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

// Defaults applied when the config file leaves auth values unset.
const (
	DefaultTokenTTL      = 24 * time.Hour
	DefaultSweepInterval = time.Hour
	DefaultBcryptCost    = 10
	DefaultCookieName    = "faer_session"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	// Pages configures the static marketing pages served next to the API.
	Pages PagesConfig `json:"pages" yaml:"pages"`
}

// AuthConfig defines the credential and session lifecycle settings.
type AuthConfig struct {
	// JWTSecret signs issued tokens. Injected here so the token service
	// never reads a package-level constant.
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`

	// TokenTTL is the lifetime of an issued token and its session row.
	TokenTTL time.Duration `json:"tokenTtl" yaml:"tokenTtl"`

	// SweepInterval is how often expired sessions are bulk-deleted.
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval"`

	// BcryptCost is the work factor for password hashing.
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`

	// CookieName is the session cookie mirroring the bearer token.
	CookieName string `json:"cookieName" yaml:"cookieName"`
}

// PagesConfig defines where the static HTML views live.
type PagesConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Dir     string `json:"dir" yaml:"dir"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads <name>.yaml through koanf and overlays environment
// variables (AUTH_JWTSECRET, HTTP_PORT, ...) on top of it.
func LoadWithEnv[T any](name string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", name)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", name)
	}

	// Environment variables override file values: AUTH_JWTSECRET -> auth.jwtsecret.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides.
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	return cfg, nil
}

// New loads the application config and applies auth defaults.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyAuthDefaults(&cfg.Auth)

	return cfg, nil
}

func applyAuthDefaults(auth *AuthConfig) {
	if auth.TokenTTL <= 0 {
		auth.TokenTTL = DefaultTokenTTL
	}
	if auth.SweepInterval <= 0 {
		auth.SweepInterval = DefaultSweepInterval
	}
	if auth.BcryptCost <= 0 {
		auth.BcryptCost = DefaultBcryptCost
	}
	if strings.TrimSpace(auth.CookieName) == "" {
		auth.CookieName = DefaultCookieName
	}
}
