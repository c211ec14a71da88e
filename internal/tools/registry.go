package tools

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the tools available to one conversation session. Each tool
// owns its persistent environment, so one registry instance is one session;
// build a fresh registry per conversation.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a name twice is an error.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[t.Name()]; ok {
		return fmt.Errorf("tool %q already registered", t.Name())
	}
	r.tools[t.Name()] = t
	return nil
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with the three canonical code tools on
// fresh environments.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range []Tool{NewPythonTool(), NewJavaScriptTool(), NewTengoTool()} {
		_ = r.Register(t)
	}
	return r
}
