package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// appEnv overrides the APP_ENV variable when set through Setup.
var appEnv string

// Setup applies the configured level and output environment process-wide.
// Level names follow zerolog; an empty level leaves the current one alone.
func Setup(level, env string) error {
	if env != "" {
		appEnv = env
	}
	if level != "" {
		lv, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zerolog.SetGlobalLevel(lv)
	}
	return nil
}

// NewZerologLogger creates a ZerologLogger writing JSON to stdout. When
// APP_ENV is "dev" or "development" a human-readable console writer is used
// instead. All lines carry the provided component field.
func NewZerologLogger(component string) Logger {
	env := strings.ToLower(appEnv)
	if env == "" {
		env = strings.ToLower(os.Getenv("APP_ENV"))
	}
	var z zerolog.Logger
	if env == "dev" || env == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		z = zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
	} else {
		z = zerolog.New(os.Stdout).With().Timestamp().Str("component", component).Logger()
	}
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
