package ui

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Displayer is an interface for displaying a string.
type Displayer interface {
	Display() string
}

func Display(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case Displayer:
		return v.Display()
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case encoding.TextMarshaler:
		if b, err := v.MarshalText(); err == nil {
			return string(b)
		}
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprintf("[%T?]", v)
}

// Table renders rows as aligned columns, the first column styled with first.
func Table(rows [][]string, first lipgloss.Style) string {
	width := 0
	for _, row := range rows {
		if len(row) != 0 {
			width = max(width, lipgloss.Width(row[0]))
		}
	}
	var b strings.Builder
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		head := row[0] + strings.Repeat(" ", width-lipgloss.Width(row[0]))
		b.WriteString(first.Render(head))
		for _, col := range row[1:] {
			b.WriteString("  ")
			b.WriteString(col)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
