// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"
	"sync"

	"google.golang.org/rageval/evaluation"
)

// BackendFactory creates a repository from a backend-specific target: the
// results directory for "file", the database path for "sqlite". Backends
// without a target ignore it.
type BackendFactory func(target string) (evaluation.Repository, error)

// Registry manages the available repository backends by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]BackendFactory
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]BackendFactory),
	}
}

// Register registers a repository factory under a backend name.
func (r *Registry) Register(name string, factory BackendFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("backend already registered for %s", name)
	}

	r.factories[name] = factory
	return nil
}

// Get retrieves the factory for a backend name.
func (r *Registry) Get(name string) (BackendFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("no backend registered for %s", name)
	}

	return factory, nil
}

// Open creates a repository for the named backend.
func (r *Registry) Open(name, target string) (evaluation.Repository, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	return factory(target)
}

// ListBackends returns all registered backend names.
func (r *Registry) ListBackends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	return names
}

// IsRegistered checks if a backend name is registered.
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// DefaultRegistry is the global registry instance.
var DefaultRegistry = NewRegistry()

// Register registers a repository factory in the default registry.
func Register(name string, factory BackendFactory) error {
	return DefaultRegistry.Register(name, factory)
}

// Open creates a repository for the named backend from the default registry.
func Open(name, target string) (evaluation.Repository, error) {
	return DefaultRegistry.Open(name, target)
}

// RegisterDefaultBackends registers the built-in backends with the default
// registry: "file" (JSON results directory), "memory", and "sqlite" (single
// file archive). Callers embedding the engine with custom backends register
// them alongside.
func RegisterDefaultBackends() error {
	builtins := map[string]BackendFactory{
		"file": func(target string) (evaluation.Repository, error) {
			return NewFileRepository(target)
		},
		"memory": func(string) (evaluation.Repository, error) {
			return NewMemoryRepository(), nil
		},
		"sqlite": func(target string) (evaluation.Repository, error) {
			return NewDatabaseRepository(target)
		},
	}
	for name, factory := range builtins {
		if err := Register(name, factory); err != nil {
			return err
		}
	}
	return nil
}
