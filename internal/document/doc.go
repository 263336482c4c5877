// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document reads and writes the Sober config document.
//
// The document belongs to another application. linuxblox only ever touches
// one top-level key (the flags key); everything else is carried through as
// the original JSON tokens, in the original order.
//
// # Key Types
//
//   - Document: raw JSON bytes of a top-level object
//   - Outcome: result of a load or save, suitable for direct display
//
// # Usage
//
//	doc, out := document.Load(path)
//	if out.Code == document.Malformed {
//	    log.Warn(out.Message())
//	}
//	next, err := document.Render(doc, document.DefaultFlagsKey, reg.List(), document.RenderOptions{})
//	if err != nil {
//	    return err
//	}
//	err = document.Persist(path, next)
package document
