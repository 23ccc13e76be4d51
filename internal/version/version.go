// Package version reports the pyscaf build version.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/indaco/pyscaf/internal/version.version=1.2.3".
var version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linker-provided version, then the module version
// recorded by go install, then "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
