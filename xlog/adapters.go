package xlog

import (
	"bytes"
	"io"
	"log/slog"

	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// TextAdapter turns plain text writes into log messages, one per line.
type TextAdapter struct {
	logger *Logger
	level  Level
	buf    bytes.Buffer
}

func (w *TextAdapter) Write(p []byte) (n int, err error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			w.buf.Write(line)
			break
		}
		line = bytes.TrimRight(line, "\r\n")
		if len(line) != 0 {
			w.logger.WithLevel(w.level).Msg(string(line))
		}
	}
	return len(p), nil
}

// ToTextWriter creates a writer that logs every line written to it.
func ToTextWriter(logger *Logger, level Level) io.Writer {
	return &TextAdapter{logger: logger, level: level}
}

// Creates a new slog.Logger that writes to the logger.
func ToSlog(logger *Logger) *slog.Logger {
	return slog.New(slogzerolog.Option{
		Logger: logger,
	}.NewZerologHandler())
}
