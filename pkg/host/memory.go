package host

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory collects registered groups in memory. It is safe for concurrent
// use and is the registrar used by tests and by the exporters' callers to
// inspect what was registered.
type Memory struct {
	mu     sync.RWMutex
	groups map[string]Arguments
	order  []string
}

// NewMemory creates an empty collector.
func NewMemory() *Memory {
	return &Memory{
		groups: make(map[string]Arguments),
	}
}

// RegisterGroup stores the arguments by group key. Duplicate keys are
// rejected.
func (m *Memory) RegisterGroup(ctx context.Context, args Arguments) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := args.Key()
	if key == "" {
		return fmt.Errorf("host: group key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.groups[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateGroup, key)
	}
	m.groups[key] = args
	m.order = append(m.order, key)
	return nil
}

// Get retrieves the arguments registered under key.
func (m *Memory) Get(key string) (Arguments, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	args, ok := m.groups[key]
	return args, ok
}

// Groups returns the registered arguments in registration order.
func (m *Memory) Groups() []Arguments {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Arguments, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.groups[key])
	}
	return out
}

// Keys returns a sorted list of registered group keys.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.groups))
	for key := range m.groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len reports how many groups were registered.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups)
}
