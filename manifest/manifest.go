// Package manifest loads the desired hosts entries from a YAML or JSON file
// and watches it for changes.
//
//	hosts_file: ./hosts          # optional, relative to the manifest
//	entries:
//	  - address: 10.0.0.5
//	    names: [app1, app1.local]
//	  - ip: 10.0.0.6             # "ip" is accepted as well
//	    names: db
//	  - cache: 10.0.0.7          # name: address
//	  - 10.0.0.8 web web.local   # hosts line
//
// The entries list may also be the whole document.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/whales-names/whales/hosts"
	"github.com/whales-names/whales/util"
	"gopkg.in/yaml.v3"
)

type Entry struct {
	Address string            `yaml:"address"`
	Names   util.Some[string] `yaml:"names"`
}

func (e Entry) Hosts() hosts.Entry {
	return hosts.Entry{Address: e.Address, Names: e.Names.Elements()}
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var line string
		if err := node.Decode(&line); err != nil {
			return err
		}
		var he hosts.Entry
		if err := he.UnmarshalText([]byte(line)); err != nil {
			return err
		}
		*e = Entry{Address: he.Address, Names: he.Names}
		return nil
	case yaml.MappingNode:
		var full struct {
			Address string            `yaml:"address"`
			IP      string            `yaml:"ip"`
			Names   util.Some[string] `yaml:"names"`
			Name    util.Some[string] `yaml:"name"`
		}
		if len(node.Content) == 2 {
			switch key := node.Content[0].Value; key {
			case "address", "ip", "names", "name":
			default:
				// name: address
				e.Names = util.One(key)
				return node.Content[1].Decode(&e.Address)
			}
		}
		if err := node.Decode(&full); err != nil {
			return err
		}
		e.Address = full.Address
		if e.Address == "" {
			e.Address = full.IP
		}
		e.Names = append(full.Names, full.Name...)
		return nil
	default:
		return fmt.Errorf("line %d: expected a hosts entry, got a list", node.Line)
	}
}

type Manifest struct {
	Path      string  `yaml:"-"`
	HostsFile string  `yaml:"hosts_file,omitempty"`
	Entries   []Entry `yaml:"entries"`
}

func (m *Manifest) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&m.Entries)
	}
	type plain Manifest
	return node.Decode((*plain)(m))
}

// HostEntries converts the manifest entries for the updater.
func (m *Manifest) HostEntries() []hosts.Entry {
	res := make([]hosts.Entry, len(m.Entries))
	for i, e := range m.Entries {
		res[i] = e.Hosts()
	}
	return res
}

// Parse decodes a manifest, relative paths are resolved against dir.
func Parse(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.HostsFile != "" && !filepath.IsAbs(m.HostsFile) {
		m.HostsFile = filepath.Join(dir, m.HostsFile)
	}
	return &m, nil
}

// ErrEmpty is reported while watching a manifest that has no content.
// Editors saving in place truncate the file first, that moment must not
// clear the managed entries.
var ErrEmpty = errors.New("manifest is empty")

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	return load(path, true)
}

func load(path string, allowEmpty bool) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !allowEmpty && len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Wrapf(ErrEmpty, "manifest %s", path)
	}
	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	m.Path = path
	return m, nil
}

// Resolve finds the manifest for a path that may be a directory, picking
// the first default file name present in it.
func Resolve(path string) string {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		dir := path
		path = filepath.Join(dir, DefaultNames[0])
		for _, name := range DefaultNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}

var DefaultNames = []string{"whales.yml", "whales.yaml", "whales.json"}
