package xlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/whales-names/whales/config"
	"golang.org/x/term"
)

const domainWidth = 14

func formatTimestamp(i any) string {
	ms, _ := i.(json.Number)
	msi, _ := ms.Int64()
	if msi == 0 {
		return ""
	}
	ts := time.UnixMilli(msi)
	if now := time.Now(); ts.YearDay() != now.YearDay() || ts.Year() != now.Year() {
		return ts.Format("2006-01-02 15:04:05")
	}
	return ts.Format(time.TimeOnly)
}

func formatDomain(i any) string {
	n, ok := i.(string)
	if !ok {
		return ""
	}
	if len(n) > domainWidth {
		n = n[:domainWidth-1] + "…"
	} else {
		n += strings.Repeat(" ", domainWidth-len(n))
	}
	return fmt.Sprintf("│ \x1b[1m%s\x1b[0m", n)
}

func formatStack(m map[string]any, b *bytes.Buffer) error {
	arr, _ := m[zerolog.ErrorStackFieldName].([]any)
	for i, frame := range arr {
		data, ok := frame.(map[string]any)
		if !ok {
			continue
		}
		if i == 0 {
			b.WriteString("\n│ \x1b[1mStack\x1b[0m\n")
		}
		funcn, _ := data["func"].(string)
		line, _ := data["line"].(string)
		source, _ := data["source"].(string)
		fmt.Fprintf(b, "│ %-24s \x1b[1m%s()\x1b[0m\n", source+":"+line, funcn)
	}
	return nil
}

// NewConsoleWriter pretty prints to terminals and passes JSON through
// everywhere else.
func NewConsoleWriter(f io.Writer) LevelWriter {
	if file, ok := f.(*os.File); ok && term.IsTerminal(int(file.Fd())) && !*config.Dumb {
		consoleWriter := &zerolog.ConsoleWriter{
			Out:             f,
			FormatTimestamp: formatTimestamp,
			FormatCaller:    formatDomain,
			FieldsExclude:   []string{zerolog.ErrorStackFieldName},
			FormatExtra:     formatStack,
		}
		return zerolog.LevelWriterAdapter{Writer: consoleWriter}
	}
	return zerolog.LevelWriterAdapter{Writer: f}
}
func StderrWriter() LevelWriter { return NewConsoleWriter(os.Stderr) }
