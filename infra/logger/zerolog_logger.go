package logger

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	corelogger "github.com/kilianp07/autorange/core/logger"
)

// Options controls the loggers returned by New.
type Options struct {
	// Level is a zerolog level name. Empty means info.
	Level string
	// Format is "json" or "console". Empty falls back to APP_ENV: console
	// when it is "dev", json otherwise.
	Format string
	// Output defaults to stdout.
	Output io.Writer
}

var (
	optsMu  sync.RWMutex
	current Options
)

// Configure sets the options used by subsequently created loggers.
func Configure(o Options) error {
	if o.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(o.Level)); err != nil {
			return err
		}
	}
	optsMu.Lock()
	current = o
	optsMu.Unlock()
	return nil
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger from the configured options. All
// logs include the provided component field.
func NewZerologLogger(component string) Logger {
	optsMu.RLock()
	o := current
	optsMu.RUnlock()
	return newZerolog(component, o)
}

func newZerolog(component string, o Options) *ZerologLogger {
	out := o.Output
	if out == nil {
		out = os.Stdout
	}
	format := strings.ToLower(o.Format)
	if format == "" && strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level := zerolog.InfoLevel
	if o.Level != "" {
		if l, err := zerolog.ParseLevel(strings.ToLower(o.Level)); err == nil {
			level = l
		}
	}
	z := zerolog.New(out).Level(level).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields corelogger.Fields) {
	withFields(l.log.Debug(), fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Infow(msg string, fields corelogger.Fields) {
	withFields(l.log.Info(), fields).Msg(msg)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

// withFields adds fields in key order so lines are stable across runs.
func withFields(ev *zerolog.Event, fields corelogger.Fields) *zerolog.Event {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ev = ev.Interface(k, fields[k])
	}
	return ev
}
