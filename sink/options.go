package sink

import (
	"io"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/philipp01105/logshim/formatter"
)

// Option configures a call to Configure.
type Option func(*settings)

type settings struct {
	JSONFormat bool
	TimeFormat formatter.TimeFormat
	Color      formatter.ColorMode
	Stdout     io.Writer
	Stderr     io.Writer
}

func defaultSettings() settings {
	return settings{
		JSONFormat: true,
		TimeFormat: formatter.TimeSeconds,
		Color:      formatter.ColorAuto,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// WithJSONFormat selects JSON lines (true, default) or colorized text (false).
func WithJSONFormat(enabled bool) Option {
	return func(s *settings) {
		s.JSONFormat = enabled
	}
}

// WithTimeFormat selects the JSON time representation (default: seconds).
func WithTimeFormat(tf formatter.TimeFormat) Option {
	return func(s *settings) {
		s.TimeFormat = tf
	}
}

// WithColor controls ANSI colors in text mode (default: auto).
func WithColor(mode formatter.ColorMode) Option {
	return func(s *settings) {
		s.Color = mode
	}
}

// WithStdout replaces the JSON destination (default: os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(s *settings) {
		s.Stdout = w
	}
}

// WithStderr replaces the text destination (default: os.Stderr).
func WithStderr(w io.Writer) Option {
	return func(s *settings) {
		s.Stderr = w
	}
}

func (s settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.TimeFormat,
			validation.Required,
			validation.In(formatter.TimeSeconds, formatter.TimeISO8601),
		),
		validation.Field(&s.Color,
			validation.Required,
			validation.In(formatter.ColorAuto, formatter.ColorAlways, formatter.ColorNever),
		),
		validation.Field(&s.Stdout, validation.When(s.JSONFormat, validation.NotNil)),
		validation.Field(&s.Stderr, validation.When(!s.JSONFormat, validation.NotNil)),
	)
}
