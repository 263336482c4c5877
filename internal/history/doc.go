// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps a journal of the Sober config as it was before each
// save, so an unwanted save can be rolled back.
//
// Snapshots live in a SQLite database (pure Go driver) under the linuxblox
// state directory. The journal is capped at a configurable number of
// entries; the oldest are pruned first.
//
// # Usage
//
//	store, err := history.Open(dbPath, 50)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//	snaps, _ := store.List(10)
//	_, err = store.Restore(snaps[0].ID)
package history
