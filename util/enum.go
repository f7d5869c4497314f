package util

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Enum maps the values of a small enumeration to their names and back.
type Enum[T comparable] struct {
	Names     map[T]string
	Values    map[string]T
	errFormat string
}

func NewEnum[T comparable](names map[T]string) Enum[T] {
	values := lo.Invert(names)
	return Enum[T]{
		Names:     names,
		Values:    values,
		errFormat: "invalid value %q, expected one of: " + strings.Join(sortedKeys(values), ", "),
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

// Options lists the accepted names in order.
func (e Enum[T]) Options() []string {
	return sortedKeys(e.Values)
}

func (e Enum[T]) ToString(value T) string {
	return e.Names[value]
}

// ToValue resolves a name, the empty name resolves to the zero value.
func (e Enum[T]) ToValue(name string) (T, bool) {
	if name == "" {
		var zero T
		return zero, true
	}
	value, ok := e.Values[name]
	return value, ok
}

func (e Enum[T]) MarshalText(value T) (text []byte, err error) {
	return []byte(e.ToString(value)), nil
}
func (e Enum[T]) UnmarshalText(into *T, text []byte) error {
	val, ok := e.ToValue(string(text))
	if !ok {
		return fmt.Errorf(e.errFormat, string(text))
	}
	*into = val
	return nil
}
