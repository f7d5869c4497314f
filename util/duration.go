package util

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads and writes as "1m30s" in flags,
// YAML and JSON.
type Duration time.Duration

func (d Duration) IsZero() bool { return d == 0 }
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Or returns o if the duration is not set.
func (d Duration) Or(o time.Duration) Duration {
	if d.IsZero() {
		return Duration(o)
	}
	return Duration(max(0, d))
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
func (d *Duration) UnmarshalText(text []byte) error {
	dx, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(dx)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var res string
	if err := node.Decode(&res); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(res))
}
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
func (d *Duration) UnmarshalJSON(text []byte) error {
	var res string
	if err := json.Unmarshal(text, &res); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(res))
}

// pflag.Value
func (d *Duration) Set(s string) error { return d.UnmarshalText([]byte(s)) }
func (d *Duration) Type() string       { return "duration" }
