package hosts

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/whales-names/whales/util"
)

// Platform is the operating system family the hosts file belongs to.
type Platform uint8

const (
	PlatformUnknown Platform = iota
	PlatformLinux
	PlatformDarwin
	PlatformWindows
)

var platformEnum = util.NewEnum(map[Platform]string{
	PlatformLinux:   "linux",
	PlatformDarwin:  "darwin",
	PlatformWindows: "windows",
})

var ErrUnsupportedPlatform = errors.New("platform not supported")

const (
	unixHostsPath    = "/etc/hosts"
	windowsHostsPath = `C:\Windows\System32\drivers\etc\hosts`
)

// ParsePlatform maps a GOOS style name to a Platform, unknown names are
// PlatformUnknown.
func ParsePlatform(name string) Platform {
	p, _ := platformEnum.ToValue(name)
	return p
}

// CurrentPlatform returns the platform the binary is running on.
func CurrentPlatform() Platform {
	return ParsePlatform(runtime.GOOS)
}

func (p Platform) String() string {
	if s := platformEnum.ToString(p); s != "" {
		return s
	}
	return "unknown"
}
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
func (p *Platform) UnmarshalText(text []byte) error {
	if string(text) == "unknown" {
		*p = PlatformUnknown
		return nil
	}
	return platformEnum.UnmarshalText(p, text)
}

// DefaultPath returns the conventional hosts file location.
func (p Platform) DefaultPath() (string, error) {
	switch p {
	case PlatformLinux, PlatformDarwin:
		return unixHostsPath, nil
	case PlatformWindows:
		return windowsHostsPath, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedPlatform, "no default hosts file for %s", p)
	}
}

// LineSeparator returns the line break used for generated content.
func (p Platform) LineSeparator() string {
	if p == PlatformWindows {
		return "\r\n"
	}
	return "\n"
}
