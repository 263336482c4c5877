// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flags

import "sync"

// ChangeType is the kind of registry mutation.
type ChangeType int

const (
	// ChangeEnabled means a descriptor's Enabled state flipped.
	ChangeEnabled ChangeType = iota
	// ChangeValue means a descriptor's Value changed.
	ChangeValue
	// ChangeReconciled means the whole registry was refreshed from a document.
	ChangeReconciled
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeEnabled:
		return "enabled"
	case ChangeValue:
		return "value"
	case ChangeReconciled:
		return "reconciled"
	default:
		return "unknown"
	}
}

// Change describes one mutation. Name, Old and New are empty for
// ChangeReconciled.
type Change struct {
	Type ChangeType
	Name string
	Old  Descriptor
	New  Descriptor
}

// Observer receives change events. It is called synchronously, after the
// registry lock has been released, so it may read the registry.
type Observer func(Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.remove(s.id)
	}
}

type notifier struct {
	mu        sync.RWMutex
	nextID    uint64
	observers map[uint64]Observer
}

func (n *notifier) add(o Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.observers == nil {
		n.observers = make(map[uint64]Observer)
	}
	n.nextID++
	n.observers[n.nextID] = o
	return &Subscription{id: n.nextID, notifier: n}
}

func (n *notifier) remove(id uint64) {
	n.mu.Lock()
	delete(n.observers, id)
	n.mu.Unlock()
}

func (n *notifier) emit(c Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, o := range n.observers {
		observers = append(observers, o)
	}
	n.mu.RUnlock()

	for _, o := range observers {
		o(c)
	}
}
