package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/philipp01105/logshim/formatter"
	"github.com/philipp01105/logshim/logger"
	"github.com/philipp01105/logshim/sink"
)

// Flag names registered by BindFlags.
const (
	FlagJSON       = "json"
	FlagTimeFormat = "time-format"
	FlagColor      = "color"
)

const (
	keyJSONFormat = "logging.json_format"
	keyTimeFormat = "logging.time_format"
	keyColor      = "logging.color"
)

type LoggingConfig struct {
	JSONFormat bool   `mapstructure:"json_format" json:"json_format"`
	TimeFormat string `mapstructure:"time_format" json:"time_format"`
	Color      string `mapstructure:"color" json:"color"`
}

type Config struct {
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// BindFlags registers the logging flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagJSON, true, "emit JSON lines on stdout instead of text on stderr")
	fs.String(FlagTimeFormat, string(formatter.TimeSeconds), "JSON time format: seconds or iso8601")
	fs.String(FlagColor, string(formatter.ColorAuto), "text colors: auto, always or never")
}

// Load reads the configuration from defaults, the YAML file at path (if
// not empty) and the environment.
func Load(path string) (*Config, error) {
	return LoadFlags(path, nil)
}

// LoadFlags is Load with flags from fs taking precedence. Only flags that
// were set on the command line override other sources.
func LoadFlags(path string, fs *pflag.FlagSet) (*Config, error) {
	log := logger.Named("logshim.config")

	v := viper.New()
	v.SetDefault(keyJSONFormat, true)
	v.SetDefault(keyTimeFormat, string(formatter.TimeSeconds))
	v.SetDefault(keyColor, string(formatter.ColorAuto))

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if fs != nil {
		for key, name := range map[string]string{
			keyJSONFormat: FlagJSON,
			keyTimeFormat: FlagTimeFormat,
			keyColor:      FlagColor,
		} {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "config: bind flag %s", name)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
		log.Debug("loaded config file", logger.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	cfg.Logging.TimeFormat = strings.ToLower(cfg.Logging.TimeFormat)
	cfg.Logging.Color = strings.ToLower(cfg.Logging.Color)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config: invalid configuration")
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Logging,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.TimeFormat,
						validation.Required,
						validation.In(string(formatter.TimeSeconds), string(formatter.TimeISO8601)),
					),
					validation.Field(&lc.Color,
						validation.Required,
						validation.In(string(formatter.ColorAuto), string(formatter.ColorAlways), string(formatter.ColorNever)),
					),
				)
			}),
		),
	)
}

// SinkOptions converts the logging section into options for sink.Configure.
func (c *Config) SinkOptions() []sink.Option {
	return []sink.Option{
		sink.WithJSONFormat(c.Logging.JSONFormat),
		sink.WithTimeFormat(formatter.TimeFormat(c.Logging.TimeFormat)),
		sink.WithColor(formatter.ColorMode(c.Logging.Color)),
	}
}
