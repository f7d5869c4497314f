package util

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Some is a list that also accepts a single scalar in YAML and JSON, so
// `names: app` and `names: [app, app.local]` both decode.
type Some[T any] []T

func Many[T any](a ...T) Some[T] {
	return a
}
func One[T any](a T) Some[T] {
	return []T{a}
}

func (a Some[T]) IsZero() bool {
	return len(a) == 0
}
func (a Some[T]) Elements() []T {
	return a
}

func (a Some[T]) MarshalYAML() (any, error) {
	if len(a) == 1 {
		return a[0], nil
	}
	return []T(a), nil
}
func (a *Some[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		var res T
		if err := node.Decode(&res); err != nil {
			return err
		}
		*a = []T{res}
		return nil
	}
	var res []T
	if err := node.Decode(&res); err != nil {
		return err
	}
	*a = res
	return nil
}
func (a Some[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]T(a))
}
func (a *Some[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*a = nil
		return nil
	}
	if data[0] != '[' {
		var res T
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		*a = []T{res}
		return nil
	}
	var res []T
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}
	*a = res
	return nil
}
