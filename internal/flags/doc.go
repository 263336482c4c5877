// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package flags holds the catalog of flags linuxblox manages inside the
// Sober config document.
//
// # Key Types
//
//   - Descriptor: one managed flag (name, description, category, state)
//   - Value: tagged variant carrying either a toggle bool or input text
//   - Registry: the session's mutable set of descriptors
//
// # Usage
//
//	reg, err := flags.NewRegistry(flags.Default())
//	if err != nil {
//	    return err
//	}
//	sub := reg.Subscribe(func(c flags.Change) { fmt.Println(c.Name) })
//	defer sub.Unsubscribe()
//	_ = reg.SetEnabled("FFlagDebugGraphicsPreferVulkan", true)
package flags
