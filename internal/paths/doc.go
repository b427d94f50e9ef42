// Package paths provides path resolution for the cfy client: the XDG base
// directories, the default CLI log file, and discovery of the per-project
// initialization directory.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. The default log file lives under the state home:
//
//	paths.DefaultLogFile() // ~/.local/state/cfy/logs/cli.log on Linux
//
// # Initialization Directory
//
// Running `cfy init` creates a .cloudify directory holding config.yaml.
// [FindInitDir] walks from a starting directory towards the filesystem root
// and returns the first .cloudify directory it finds, so commands work from
// any subdirectory of an initialized project.
package paths
