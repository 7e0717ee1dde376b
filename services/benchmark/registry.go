// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package benchmark

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds subject factories by name.
//
// Description:
//
//	Suites refer to subjects by name; the Registry resolves those names to
//	factories. Every factory is validated on registration, so a resolved
//	factory always satisfies the subject contract.
//
// Thread Safety: Safe for concurrent use via read-write mutex.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under its Name.
//
// Outputs:
//   - error: ErrContractViolation if the factory is invalid,
//     ErrAlreadyRegistered if the name is taken.
//
// Thread Safety: Safe for concurrent use.
func (r *Registry) Register(f Factory) error {
	if err := f.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[f.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, f.Name)
	}
	r.factories[f.Name] = f
	return nil
}

// MustRegister registers a factory and panics on error.
// Intended for program start-up only.
func (r *Registry) MustRegister(f Factory) {
	if err := r.Register(f); err != nil {
		panic(fmt.Sprintf("benchmark: failed to register %q: %v", f.Name, err))
	}
}

// Get returns the factory registered under name.
//
// Outputs:
//   - Factory: The registered factory.
//   - error: ErrNotFound if name is not registered.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]
	if !ok {
		return Factory{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return f, nil
}

// Resolve looks up several names, preserving their order.
func (r *Registry) Resolve(names ...string) ([]Factory, error) {
	out := make([]Factory, 0, len(names))
	for _, name := range names {
		f, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered factories.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
