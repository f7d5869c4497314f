package hosts

import (
	"strings"

	"github.com/samber/lo"
)

type Hostname = string
type Address = string

// Entry is one desired address to names mapping.
type Entry struct {
	Address Address    `json:"address" yaml:"address"`
	Names   []Hostname `json:"names" yaml:"names"`
}

// Valid reports whether the entry produces a line in the managed region.
func (e Entry) Valid() bool {
	return e.Address != "" && len(e.Names) != 0
}

func (e Entry) HasName(name Hostname) bool {
	return lo.Contains(e.Names, name)
}

// String renders the hosts line without a terminator.
func (e Entry) String() string {
	return e.Address + "\t" + strings.Join(e.Names, " ")
}

// UnmarshalText parses a single hosts line, trailing comments are dropped.
func (e *Entry) UnmarshalText(data []byte) error {
	line, _, _ := strings.Cut(string(data), "#")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		*e = Entry{}
		return nil
	}
	e.Address = fields[0]
	e.Names = fields[1:]
	return nil
}
func (e Entry) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// FormatRegion renders the body of the managed region.
//
// Invalid entries are skipped. The result always starts and ends with eol,
// so an empty entry list yields eol+eol.
func FormatRegion(entries []Entry, eol string) string {
	lines := lo.FilterMap(entries, func(e Entry, _ int) (string, bool) {
		return e.String(), e.Valid()
	})
	return eol + strings.Join(lines, eol) + eol
}

// Merge moves names to address. The names are removed from every other
// entry first, entries left without names are dropped.
func Merge(entries []Entry, address Address, names ...Hostname) []Entry {
	result := Remove(entries, names...)
	for i := range result {
		if result[i].Address == address {
			result[i].Names = lo.Uniq(append(result[i].Names, names...))
			return result
		}
	}
	return append(result, Entry{Address: address, Names: lo.Uniq(names)})
}

// Remove drops names from every entry, entries left without names are dropped.
func Remove(entries []Entry, names ...Hostname) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Names = lo.Without(e.Names, names...)
		if e.Valid() {
			result = append(result, e)
		}
	}
	return result
}
