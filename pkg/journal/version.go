// Package journal holds module-wide metadata for the journal tool.
package journal

// Version is the release version of the journal module. Overridden at
// build time with -ldflags "-X github.com/mesh-intelligence/journal/pkg/journal.Version=...".
var Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/journal"
