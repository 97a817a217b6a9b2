// Package boards holds the compiled-in board port tables and a name registry
// over them. Which board a firmware image uses is chosen at build time with a
// board_* tag (see select_*.go); tools may open any registered board by name.
package boards

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"portmap-go/errcode"
	"portmap-go/services/hal/ports"
)

var (
	mu        sync.RWMutex
	providers = map[string]ports.Provider{}
)

// Register adds a board provider. Registering a name twice panics.
func Register(p ports.Provider) {
	mu.Lock()
	defer mu.Unlock()
	name := p.Name()
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("board provider already registered for %q", name))
	}
	providers[name] = p
}

func Lookup(name string) (ports.Provider, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := providers[name]
	return p, ok
}

// Names lists registered boards in sorted order.
func Names() []string {
	mu.RLock()
	names := lo.Keys(providers)
	mu.RUnlock()
	sort.Strings(names)
	return names
}

// Open builds the registry for a named board.
func Open(name string) (*ports.Registry, error) {
	p, ok := Lookup(name)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownBoard, Op: "open_board", Msg: name}
	}
	return ports.New(p)
}

// Selected is the board linked into this build.
func Selected() string { return selected }

// OpenSelected builds the registry of the linked board.
func OpenSelected() (*ports.Registry, error) { return Open(selected) }
