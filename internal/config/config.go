// Package config loads the settings of the ecdemo command from defaults, an
// optional YAML file and ECDEMO_* environment variables.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/smallyu/go-ecc-p256/internal/crypto/digest"
)

// Key generation modes.
const (
	// KeyGenReference draws private keys from [0, 2^256).
	KeyGenReference = "reference"
	// KeyGenOrder draws private keys from [1, n-1].
	KeyGenOrder = "order"
)

// EnvPrefix is the prefix of environment overrides, e.g. ECDEMO_HASH.
const EnvPrefix = "ECDEMO"

// Config holds the command settings.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Hash     string `mapstructure:"hash"`
	KeyGen   string `mapstructure:"keygen"`
	KDFInfo  string `mapstructure:"kdf_info"`
	KDFSize  int    `mapstructure:"kdf_size"`
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("hash", digest.SHA256)
	v.SetDefault("keygen", KeyGenReference)
	v.SetDefault("kdf_info", "ecdemo")
	v.SetDefault("kdf_size", 32)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional file into v and decodes the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !digest.Supported(c.Hash) {
		return errors.Errorf("config: unsupported hash %q, want one of %v", c.Hash, digest.Names())
	}
	switch c.KeyGen {
	case KeyGenReference, KeyGenOrder:
	default:
		return errors.Errorf("config: unknown keygen mode %q", c.KeyGen)
	}
	if c.KDFSize <= 0 {
		return errors.Errorf("config: kdf_size must be positive, got %d", c.KDFSize)
	}
	return nil
}
