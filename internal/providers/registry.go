package providers

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Factory builds a source around the shared HTTP client.
type Factory func(client *http.Client, opts Options) Source

// Options carries per-run settings every source understands.
type Options struct {
	BaseURL  string
	Timezone string
	// Now overrides the clock used for relative dates.
	Now    func() time.Time
	Logger interface {
		Warnf(string, ...any)
		Debugf(string, ...any)
	}
}

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
	infos    = map[string]Info{}
)

// Register is called from package init; a duplicate ID is a programming error.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[info.ID]; exists {
		panic(fmt.Sprintf("source with ID '%s' is already registered", info.ID))
	}
	registry[info.ID] = f
	infos[info.ID] = info
}

func Get(id string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := registry[id]
	return f, ok
}

// All returns the registered sources sorted by ID.
func All() []Info {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Info, 0, len(infos))
	for _, i := range infos {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// New builds the source registered under id.
func New(id string, client *http.Client, opts Options) (Source, error) {
	f, ok := Get(id)
	if !ok {
		return nil, fmt.Errorf("source %q: %w", id, ErrNotFound)
	}

	return f(client, opts), nil
}
