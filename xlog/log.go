package xlog

import (
	"context"
	"io"
	llog "log"
	"log/slog"

	pkgerr "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

type Logger = zerolog.Logger
type Level = zerolog.Level
type LevelWriter = zerolog.LevelWriter
type Event = zerolog.Event

const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
)

var defaultOutput io.Writer = StderrWriter()

type DefaultWriter struct{}

func (DefaultWriter) Write(p []byte) (n int, err error) { return defaultOutput.Write(p) }

func Default() *Logger { return &log.Logger }

// Not safe for concurrent use.
func SetDefaultOutput(w ...io.Writer) {
	defaultOutput = zerolog.MultiLevelWriter(w...)
}

type stackTracer interface {
	StackTrace() pkgerr.StackTrace
}

// WrapStackError attaches the current stack to err for Event.Stack, unless
// err already carries one.
func WrapStackError(err error) error {
	if _, ok := err.(stackTracer); ok || err == nil {
		return err
	}
	return pkgerr.WithStack(err)
}

// Replaces all defaults.
func init() {
	root := NewDomain("whales-names", DefaultWriter{})
	log.Logger = *root.Logger()

	slog.SetDefault(ToSlog(&log.Logger))
	llog.SetFlags(0)
	llog.SetOutput(ToTextWriter(&log.Logger, LevelInfo))

	zerolog.LevelFieldName = "l"
	zerolog.TimestampFieldName = "t"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.CallerFieldName = DomainFieldName
	zerolog.DefaultContextLogger = &log.Logger
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// SetLoggerLevel sets the global logger level.
func SetLoggerLevel(level Level) {
	zerolog.SetGlobalLevel(level)
}

func InfoC(ctx context.Context) *Event { return Ctx(ctx).Info() }

// Ctx returns the Logger associated with the ctx, or the default one.
func Ctx(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}
