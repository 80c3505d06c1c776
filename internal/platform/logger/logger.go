package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger es la interfaz que usan servicios y middleware.
// Los campos se pasan como mapa para no acoplar el dominio a zerolog.
type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string
}

type zeroLogger struct {
	zl zerolog.Logger
}

// New crea un logger sobre stdout.
func New(opts Options) Logger {
	return NewWithWriter(os.Stdout, opts)
}

// NewWithWriter permite dirigir la salida (tests).
func NewWithWriter(w io.Writer, opts Options) Logger {
	if opts.Format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	ctx := zerolog.New(w).Level(opts.Level.zerolog()).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}
	return &zeroLogger{zl: ctx.Logger()}
}

// Nop descarta todo. Es el default de los servicios cuando no se inyecta logger.
func Nop() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

func (l *zeroLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &zeroLogger{zl: l.zl.With().Fields(clean(fields)).Logger()}
}

func (l *zeroLogger) Debug(msg string, fields map[string]any) { l.zl.Debug().Fields(clean(fields)).Msg(msg) }
func (l *zeroLogger) Info(msg string, fields map[string]any)  { l.zl.Info().Fields(clean(fields)).Msg(msg) }
func (l *zeroLogger) Warn(msg string, fields map[string]any)  { l.zl.Warn().Fields(clean(fields)).Msg(msg) }
func (l *zeroLogger) Error(msg string, fields map[string]any) { l.zl.Error().Fields(clean(fields)).Msg(msg) }

// clean descarta keys vacías.
func clean(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out[k] = v
	}
	return out
}
