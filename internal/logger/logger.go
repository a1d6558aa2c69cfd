package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a zerolog logger bound to one component name.
type Logger struct {
	*zerolog.Logger
	component string
}

var levels = map[string]zerolog.Level{
	"development": zerolog.DebugLevel,
	"test":        zerolog.WarnLevel,
	"staging":     zerolog.InfoLevel,
	"production":  zerolog.InfoLevel,
}

// Config controls where and how a component logger writes.
type Config struct {
	AppEnv string
	Out    io.Writer
}

// New creates a logger for component using APP_ENV to pick the level.
func New(component string) *Logger {
	return NewWithConfig(component, Config{AppEnv: os.Getenv("APP_ENV")})
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop(component string) *Logger {
	l := zerolog.Nop()
	return &Logger{Logger: &l, component: component}
}

// NewWithConfig creates a component logger writing colored console output.
func NewWithConfig(component string, cfg Config) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	production := cfg.AppEnv == "production"

	console := zerolog.ConsoleWriter{
		Out: out,
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("[%s] %s", component, i)
		},
		FormatLevel: formatLevel,
	}
	if production {
		console.TimeFormat = ""
	} else {
		console.TimeFormat = "2006-01-02 15:04:05"
	}

	var l zerolog.Logger
	if production {
		l = zerolog.New(console).Level(levelFor(cfg.AppEnv))
	} else {
		l = zerolog.New(console).Level(levelFor(cfg.AppEnv)).With().Timestamp().Logger()
	}
	return &Logger{Logger: &l, component: component}
}

func formatLevel(i interface{}) string {
	level, ok := i.(string)
	if !ok {
		return "???"
	}
	switch level {
	case "debug":
		return "\033[36m[DEBUG]\033[0m"
	case "info":
		return "\033[34m[INFO]\033[0m"
	case "warn":
		return "\033[33m[WARN]\033[0m"
	case "error":
		return "\033[31m[ERROR]\033[0m"
	case "fatal":
		return "\033[35m[FATAL]\033[0m"
	default:
		return fmt.Sprintf("[%s]", level)
	}
}

func levelFor(env string) zerolog.Level {
	if level, ok := levels[env]; ok {
		return level
	}
	return zerolog.DebugLevel
}

// Component returns the name the logger was created with.
func (l *Logger) Component() string { return l.component }

// WithRun returns a child logger tagging every event with the run id.
func (l *Logger) WithRun(runID string) *Logger {
	child := l.Logger.With().Str("run_id", runID).Logger()
	return &Logger{Logger: &child, component: l.component}
}

func (l *Logger) Debug() *zerolog.Event   { return l.Logger.Debug() }
func (l *Logger) Info() *zerolog.Event    { return l.Logger.Info() }
func (l *Logger) Success() *zerolog.Event { return l.Logger.Info().Str("level", "success") }
func (l *Logger) Warn() *zerolog.Event    { return l.Logger.Warn() }
func (l *Logger) Error() *zerolog.Event   { return l.Logger.Error() }

func (l *Logger) LogInfo(msg string) { l.Info().Msg(msg) }

func (l *Logger) LogError(msg string, err error) {
	if err != nil {
		l.Error().Err(err).Msg(msg)
		return
	}
	l.Error().Msg(msg)
}

func (l *Logger) LogDebugf(format string, v ...interface{})   { l.Debug().Msgf(format, v...) }
func (l *Logger) LogInfof(format string, v ...interface{})    { l.Info().Msgf(format, v...) }
func (l *Logger) LogSuccessf(format string, v ...interface{}) { l.Success().Msgf(format, v...) }
func (l *Logger) LogWarnf(format string, v ...interface{})    { l.Warn().Msgf(format, v...) }
func (l *Logger) LogErrorf(format string, v ...interface{})   { l.Error().Msgf(format, v...) }
func (l *Logger) LogFatalf(format string, v ...interface{})   { l.Logger.Fatal().Msgf(format, v...) }
