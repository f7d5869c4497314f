package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const envPrefix = "WHALES_"

// Global flags.
var Verbose = GBool("verbose", "V", false, "Enable verbose logging")
var Dumb = GBool("dumb", "D", IsTermDumb(), "Disable colors and complex terminal output")
var EnvName = GString("env", "E", "", "Environment name, used for running multiple instances side by side")
var HostsFile = GString("hosts-file", "f", "", "Hosts file to manage, defaults to the platform hosts file")
var Platform = GString("platform", "", "", "Platform family (linux, darwin, windows), defaults to the running one")
var WriteMode = GString("write-mode", "", "", "How the hosts file is replaced (atomic, truncate)")
var LogFile = GString("log-file", "", "", "Also write logs to this file, relative paths are placed in the log directory")

var dirs = sync.Map{}

func mkdironce(dir string) {
	if _, loaded := dirs.LoadOrStore(dir, true); !loaded {
		os.MkdirAll(dir, 0755)
	}
}

// Home directory.
func Home() (home string) {
	if *EnvName != "" && filepath.IsAbs(*EnvName) {
		home = *EnvName
	} else {
		userDir, _ := os.UserHomeDir()
		if *EnvName == "" {
			home = filepath.Join(userDir, ".whales-names")
		} else {
			home = filepath.Join(userDir, ".whales-names-"+*EnvName)
		}
	}
	mkdironce(home)
	return
}

// Subdirectories.
type Subdir string

const (
	LogDir Subdir = "log"
)

func (s Subdir) Path() string {
	path := filepath.Join(Home(), string(s))
	mkdironce(path)
	return path
}
func (s Subdir) File(name string) string {
	return filepath.Join(s.Path(), name)
}

var RootCommand = &cobra.Command{
	Use:           "whales-names",
	Short:         "Keeps container hostnames in a managed block of the hosts file.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func getenv(name string) (string, bool) {
	name = strings.ToUpper(name)
	name = strings.ReplaceAll(name, "-", "_")
	return os.LookupEnv(envPrefix + name)
}
func flags() *pflag.FlagSet { return RootCommand.PersistentFlags() }

func GString(name, shorthand string, value string, usage string) *string {
	if env, ok := getenv(name); ok {
		value = env
	}
	flags().StringVarP(&value, name, shorthand, value, usage)
	return &value
}
func GBool(name, shorthand string, value bool, usage string) *bool {
	if env, ok := getenv(name); ok {
		if v, e := strconv.ParseBool(env); e == nil {
			value = v
		}
	}
	flags().BoolVarP(&value, name, shorthand, value, usage)
	return &value
}

// IsSet reports whether a global was given on the command line or through
// the environment.
func IsSet(name string) bool {
	if f := flags().Lookup(name); f != nil && f.Changed {
		return true
	}
	_, ok := getenv(name)
	return ok
}

// Utils.
func IsTermDumb() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return true
	}

	isTrue := map[string]bool{
		"1": true, "t": true, "y": true,
		"true": true, "yes": true, "on": true,
		"0": false, "f": false, "n": false,
		"false": false, "no": false, "off": false,
	}
	envs := []string{"WHALES_NON_INTERACTIVE", "CI", "NON_INTERACTIVE"}
	for _, env := range envs {
		if v, ok := os.LookupEnv(env); ok {
			if b, ok := isTrue[strings.ToLower(v)]; ok {
				return b
			}
		}
	}
	return false
}
