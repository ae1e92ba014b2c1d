// Package commands is the dispatch table for the partcat CLI: each
// operation registers a cobra.Command builder during its package's
// init(), and cmd/partcat wires the registered set onto the root
// command.
package commands

import (
	"log"
	"sort"
	"sync"

	"github.com/spf13/cobra"
)

// Builder constructs a cobra.Command for one catalog operation. It is
// called once per process, when the command set is assembled.
type Builder func() *cobra.Command

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Builder)
)

// Register is called by each command package during its init() phase.
func Register(name string, b Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		log.Printf("commands: duplicate registration for %q, overwriting", name)
	}
	registry[name] = b
}

// All builds and returns every registered command, sorted by name for
// a deterministic help listing.
func All() []*cobra.Command {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()
	sort.Strings(names)

	registryMu.RLock()
	defer registryMu.RUnlock()
	cmds := make([]*cobra.Command, 0, len(names))
	for _, name := range names {
		cmds = append(cmds, registry[name]())
	}
	return cmds
}

// RegisteredNames reports every registered command name, sorted.
func RegisteredNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
