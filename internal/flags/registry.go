// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flags

import (
	"fmt"
	"strings"
	"sync"
)

// Registry is the session's set of descriptors. Descriptors are mutated in
// place and keep their construction order.
type Registry struct {
	mu          sync.RWMutex
	descriptors []Descriptor
	index       map[string]int

	notify notifier
}

// NewRegistry builds a registry from descs. Names must be non-empty and
// unique (case-sensitive).
func NewRegistry(descs []Descriptor) (*Registry, error) {
	r := &Registry{
		descriptors: make([]Descriptor, len(descs)),
		index:       make(map[string]int, len(descs)),
	}
	for i, d := range descs {
		if strings.TrimSpace(d.Name) == "" {
			return nil, &FlagError{Name: d.Name, Err: ErrInvalidName}
		}
		if _, dup := r.index[d.Name]; dup {
			return nil, &FlagError{Name: d.Name, Err: ErrDuplicateFlag}
		}
		r.index[d.Name] = i
		r.descriptors[i] = d
	}
	return r, nil
}

// MustDefault returns a registry of Default(). The built-in catalog is
// known to be valid, so construction cannot fail.
func MustDefault() *Registry {
	r, err := NewRegistry(Default())
	if err != nil {
		panic(fmt.Sprintf("flags: invalid default catalog: %v", err))
	}
	return r
}

// Len returns the number of descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

// List returns a snapshot of every descriptor in order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Get returns a copy of the named descriptor.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, &FlagError{Name: name, Err: ErrUnknownFlag}
	}
	return r.descriptors[i], nil
}

// Has reports whether name is a managed flag.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[name]
	return ok
}

// SetEnabled changes whether the named flag is written on save.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	return r.mutate(name, ChangeEnabled, func(d *Descriptor) error {
		d.Enabled = enabled
		return nil
	})
}

// SetValue replaces the named flag's value. v.Kind must match the flag.
func (r *Registry) SetValue(name string, v Value) error {
	return r.mutate(name, ChangeValue, func(d *Descriptor) error {
		if v.Kind != d.Value.Kind {
			return &FlagError{Name: name, Err: ErrKindMismatch}
		}
		if v.Kind == KindInput {
			v = Input(v.Text)
		}
		d.Value = v
		return nil
	})
}

// SetText decodes raw according to the flag's kind and stores it. Toggles
// accept the same spellings the loader does.
func (r *Registry) SetText(name, raw string) error {
	return r.mutate(name, ChangeValue, func(d *Descriptor) error {
		d.Value = DecodeText(d.Value.Kind, raw)
		return nil
	})
}

// Reconcile calls fn for every descriptor under the write lock, then emits
// a single ChangeReconciled event. fn must not change Name or Value.Kind.
func (r *Registry) Reconcile(fn func(d *Descriptor)) {
	r.mu.Lock()
	for i := range r.descriptors {
		name, kind := r.descriptors[i].Name, r.descriptors[i].Value.Kind
		fn(&r.descriptors[i])
		r.descriptors[i].Name = name
		r.descriptors[i].Value.Kind = kind
	}
	r.mu.Unlock()

	r.notify.emit(Change{Type: ChangeReconciled})
}

// Subscribe registers o for change events.
func (r *Registry) Subscribe(o Observer) *Subscription {
	return r.notify.add(o)
}

func (r *Registry) mutate(name string, typ ChangeType, fn func(d *Descriptor) error) error {
	r.mu.Lock()
	i, ok := r.index[name]
	if !ok {
		r.mu.Unlock()
		return &FlagError{Name: name, Err: ErrUnknownFlag}
	}
	old := r.descriptors[i]
	if err := fn(&r.descriptors[i]); err != nil {
		r.descriptors[i] = old
		r.mu.Unlock()
		return err
	}
	updated := r.descriptors[i]
	r.mu.Unlock()

	if updated != old {
		r.notify.emit(Change{Type: typ, Name: name, Old: old, New: updated})
	}
	return nil
}
