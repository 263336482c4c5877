// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/flags"
)

// Apply refreshes every descriptor in reg from the flags object stored under
// key in doc. It reports whether a flags object was found.
//
// When the object exists, each descriptor is overwritten: a non-null entry
// enables it and decodes the value by kind; a missing or null entry disables
// it and keeps the previous value. When the key is absent or not an object,
// reg is left untouched.
func Apply(doc document.Document, key string, reg *flags.Registry) bool {
	entries, ok := doc.FlagsObject(key)
	if !ok {
		return false
	}

	// First occurrence of a repeated name wins, null or not.
	seen := make(map[string]bool, len(entries))
	stored := make(map[string]string, len(entries))
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		if text, ok := document.TextOf(e.Value); ok {
			stored[e.Name] = text
		}
	}

	reg.Reconcile(func(d *flags.Descriptor) {
		text, ok := stored[d.Name]
		if !ok {
			d.Enabled = false
			return
		}
		d.Enabled = true
		d.Value = flags.DecodeText(d.Kind(), text)
	})
	return true
}
