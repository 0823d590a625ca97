// Package version provides build-time version information.
//
// Set at build time via:
//
//	go build -ldflags "-X github.com/agentfoundry/toolbench/internal/version.Version=v1.2.3"
package version

// Version is the release version, set at build time via ldflags.
var Version = "dev"
