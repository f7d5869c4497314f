package revision

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Overridden at build time with -ldflags "-X .../revision.VersionString=v1.2".
var VersionString = "v0.1"

func getCommit() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 8 {
				return setting.Value[:8]
			}
		}
	}
	return "00000000"
}

var GetVersion = sync.OnceValue(func() string {
	return fmt.Sprintf("%s-%s", VersionString, getCommit())
})
