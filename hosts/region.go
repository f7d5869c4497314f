package hosts

import (
	"strings"
)

const (
	BeginMarker = "# whales-names begin"
	EndMarker   = "# whales-names end"
)

// BuildBlock renders the complete managed block including both markers.
func BuildBlock(entries []Entry, eol string) string {
	body := eol
	if len(entries) != 0 {
		body = FormatRegion(entries, eol)
	}
	return eol + BeginMarker + eol + body + EndMarker + eol + eol
}

// Region is the span of a managed block within the file content.
//
// Start is the newline preceding the begin marker (or the marker itself
// at the start of the content), End is past the end marker and at most two
// line breaks following it. Body covers the lines between the markers.
type Region struct {
	Start, End         int
	BodyStart, BodyEnd int
}

// lineBreakAt returns the width of the line break at i, zero if there is none.
func lineBreakAt(s string, i int) int {
	switch {
	case i < len(s) && s[i] == '\n':
		return 1
	case i+1 < len(s) && s[i] == '\r' && s[i+1] == '\n':
		return 2
	}
	return 0
}

// markerLines calls f with the offset of every line that consists of
// exactly marker, stopping when f returns false.
func markerLines(s string, marker string, f func(at int) bool) {
	for from := 0; from <= len(s); {
		i := strings.Index(s[from:], marker)
		if i < 0 {
			return
		}
		at := from + i
		after := at + len(marker)
		if (at == 0 || s[at-1] == '\n') && (after == len(s) || lineBreakAt(s, after) != 0) {
			if !f(at) {
				return
			}
		}
		from = at + 1
	}
}

// FindRegion locates the first complete begin/end marker pair.
//
// The first end marker line preceded by any begin marker line closes the
// region, and the region opens at the closest begin line before it. Stray
// end lines with no begin before them are ignored.
func FindRegion(content string) (r Region, ok bool) {
	begin, end := -1, -1
	markerLines(content, EndMarker, func(at int) bool {
		markerLines(content[:at], BeginMarker, func(b int) bool {
			begin = b
			return true
		})
		end = at
		return begin < 0
	})
	if begin < 0 {
		return r, false
	}

	// Leading side: the newline right before the begin line.
	r.Start = max(begin-1, 0)

	// Body: everything after the begin line's terminator up to the end line.
	r.BodyStart = begin + len(BeginMarker)
	r.BodyStart += lineBreakAt(content, r.BodyStart)
	r.BodyEnd = max(end, r.BodyStart)

	// Trailing side: the end line's terminator and one blank line.
	r.End = end + len(EndMarker)
	for n := 0; n < 2; n++ {
		w := lineBreakAt(content, r.End)
		if w == 0 {
			break
		}
		r.End += w
	}
	return r, true
}

// Apply computes the new file content with the managed block set to entries.
//
// An existing region is replaced in place and the rest of the content is
// kept verbatim. Otherwise the block is appended on a line of its own,
// followed by one more line break. Apply is idempotent.
func Apply(content string, entries []Entry, eol string) string {
	block := BuildBlock(entries, eol)
	if r, ok := FindRegion(content); ok {
		start := r.Start
		// A carriage return is only part of the span when the block writes one.
		if eol == "\r\n" && start > 0 && content[start-1] == '\r' {
			start--
		}
		return content[:start] + block + content[r.End:]
	}

	var b strings.Builder
	b.Grow(len(content) + len(block) + 2*len(eol))
	b.WriteString(content)
	if n := len(content); n != 0 && content[n-1] != '\n' && content[n-1] != '\r' {
		b.WriteString(eol)
	}
	b.WriteString(block)
	b.WriteString(eol)
	return b.String()
}

// ParseRegion returns the entries listed in the managed region.
// Blank lines and comments are skipped, ok is false if there is no region.
func ParseRegion(content string) (entries []Entry, ok bool) {
	r, ok := FindRegion(content)
	if !ok {
		return nil, false
	}
	for _, line := range strings.Split(content[r.BodyStart:r.BodyEnd], "\n") {
		var e Entry
		e.UnmarshalText([]byte(line))
		if e.Address == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, true
}
