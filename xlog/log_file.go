package xlog

import (
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/whales-names/whales/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogRetentionDays = 28
	LogMaxSizeMB     = 16
)

type noCloser struct {
	io.Writer
}

func (noCloser) Close() error { return nil }

// isStderr reports whether name refers to the console output rather than a file.
func isStderr(name string) bool {
	switch name {
	case "", "stderr", "session":
		return true
	}
	return false
}

// FileWriter opens a rotating log file. Relative names are placed in the log
// directory, "stderr" maps to the default output and "null" discards.
func FileWriter(name string) io.WriteCloser {
	if isStderr(name) {
		return noCloser{DefaultWriter{}}
	}
	switch name {
	case "null", "NUL", "/dev/null":
		return noCloser{io.Discard}
	}
	if !filepath.IsAbs(name) {
		name = config.LogDir.File(name)
	}
	return &lumberjack.Logger{
		Filename: name,
		MaxSize:  LogMaxSizeMB,
		MaxAge:   LogRetentionDays,
	}
}

// Setup applies the logging related global flags. The returned closer
// flushes the log file, if any.
func Setup() io.Closer {
	if *config.Verbose {
		SetLoggerLevel(LevelDebug)
	} else {
		SetLoggerLevel(LevelInfo)
	}
	if isStderr(*config.LogFile) {
		SetDefaultOutput(StderrWriter())
		return noCloser{}
	}
	file := FileWriter(*config.LogFile)
	SetDefaultOutput(StderrWriter(), zerolog.LevelWriterAdapter{Writer: file})
	return file
}
