package lens

import (
	"sort"
	"sync"
)

// manager implements the lens Manager interface
type manager struct {
	lenses map[string]Lens
	mu     sync.RWMutex
}

// NewManager creates an empty lens registry
func NewManager() Manager {
	return &manager{
		lenses: make(map[string]Lens),
	}
}

// Get returns a copy of the lens registered under name
func (m *manager) Get(name string) (Lens, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, exists := m.lenses[name]
	if !exists {
		return Lens{}, false
	}

	// Return a copy to prevent external modification
	return l.Clone(), true
}

// Set registers or replaces a lens under its Name
func (m *manager) Set(l Lens) {
	stored := l.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lenses[l.Name] = stored
}

// Names returns the registered lens names in sorted order
func (m *manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.lenses))
	for name := range m.lenses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
