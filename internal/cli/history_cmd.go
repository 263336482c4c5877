// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - History command implementation for linuxblox.
//
// Command: history [subcommand]
// Short:   Browse and restore snapshots taken before each save
// Aliases: snapshots
//
// Subcommands:
//   list (default)      List snapshots, newest first
//   show <ID>           Print a snapshot's content
//   restore <ID>        Write a snapshot back to its path
//
// IDs may be shortened to any unique prefix.
//
// Examples:
//   linuxblox history
//   linuxblox history list --limit 5 --json
//   linuxblox history show 3f2a
//   linuxblox history restore 3f2a --yes

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/linuxblox/internal/history"
	"github.com/jeranaias/linuxblox/internal/util"
)

// HandleHistory handles the "history" command.
func HandleHistory(rt *Runtime, args Args) error {
	p := NewArgParser(args.Raw, boolOptions...)

	store, err := rt.OpenHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	switch args.Subcommand {
	case "", "list", "ls":
		return handleHistoryList(rt, args, p, store)
	case "show":
		return handleHistoryShow(rt, args, p, store)
	case "restore":
		return handleHistoryRestore(rt, args, p, store)
	default:
		return ErrUnknownSubcommand("history", args.Subcommand)
	}
}

func handleHistoryList(rt *Runtime, args Args, p *ArgParser, store *history.Store) error {
	limit := p.FlagIntOrDefault("limit", 20)
	snaps, err := store.List(limit)
	if err != nil {
		return err
	}

	if args.JSON {
		data := make([]SnapshotData, 0, len(snaps))
		for _, s := range snaps {
			data = append(data, snapshotData(s))
		}
		return NewJSONResponse("history list", data).Print(rt.Out)
	}

	fmt.Fprintln(rt.Out, TitleStyle.Render("Config Snapshots"))
	if !rt.Config.History.Enabled {
		fmt.Fprintln(rt.Out, WarningStyle.Render("History is disabled; no new snapshots are taken."))
	}
	if len(snaps) == 0 {
		fmt.Fprintln(rt.Out, DimStyle.Render("No snapshots yet. One is taken before every save."))
		return nil
	}

	now := time.Now()
	for _, s := range snaps {
		fmt.Fprintf(rt.Out, "  %s  %s  %s  %s  %s\n",
			HighlightStyle.Render(shortID(s.ID)),
			ValueStyle.Render(s.TakenAt.Local().Format("2006-01-02 15:04:05")),
			DimStyle.Render(util.PadRight(formatAge(s.TakenAt, now), 8)),
			DimStyle.Render(util.PadRight(s.Reason, 20)),
			DimStyle.Render(formatBytes(int64(s.Size))))
	}
	return nil
}

func handleHistoryShow(rt *Runtime, args Args, p *ArgParser, store *history.Store) error {
	id := p.Positional(1)
	if id == "" {
		return ErrMissingArgument("ID", "linuxblox history show <ID>")
	}
	snap, err := store.Get(id)
	if err != nil {
		return err
	}

	if args.JSON {
		data := snapshotData(snap)
		data.Content = string(snap.Content)
		return NewJSONResponse("history show", data).Print(rt.Out)
	}

	fmt.Fprintf(rt.Err, "%s %s  %s\n",
		DimStyle.Render("#"),
		snap.ID,
		DimStyle.Render(snap.TakenAt.Local().Format(time.RFC3339)+"  "+snap.Path))
	rt.Out.Write(snap.Content)
	if n := len(snap.Content); n > 0 && snap.Content[n-1] != '\n' {
		fmt.Fprintln(rt.Out)
	}
	return nil
}

func handleHistoryRestore(rt *Runtime, args Args, p *ArgParser, store *history.Store) error {
	id := p.Positional(1)
	if id == "" {
		return ErrMissingArgument("ID", "linuxblox history restore <ID>")
	}
	snap, err := store.Get(id)
	if err != nil {
		return err
	}

	confirmed, err := rt.RequireConfirmation(
		fmt.Sprintf("overwrite %s with snapshot %s", snap.Path, shortID(snap.ID)),
		ConfirmationOptions{Yes: p.BoolFlag("yes") || p.BoolFlag("y"), JSONMode: args.JSON},
	)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(rt.Out, DimStyle.Render("Cancelled."))
		return nil
	}

	// Keep what is on disk now so the restore itself can be undone.
	current, err := os.ReadFile(snap.Path)
	switch {
	case err == nil:
		if err := store.Record(uuid.NewString(), snap.Path, current, "pre-restore"); err != nil {
			rt.logger().WithError(err).Warn("could not journal config before restore")
		}
	case !errors.Is(err, fs.ErrNotExist):
		rt.logger().WithError(err).Warn("could not read config before restore")
	}

	restored, err := store.Restore(snap.ID)
	if err != nil {
		return NewCommandError("history", "restore", "could not write snapshot", err)
	}
	rt.logger().WithField("snapshot", restored.ID).WithField("path", restored.Path).Info("snapshot restored")

	if args.JSON {
		return NewJSONResponse("history restore", snapshotData(restored)).Print(rt.Out)
	}
	fmt.Fprintf(rt.Out, "%s Restored %s to %s\n",
		SuccessStyle.Render("[OK]"), shortID(restored.ID), PathStyle.Render(restored.Path))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func snapshotData(s history.Snapshot) SnapshotData {
	return SnapshotData{
		ID:        s.ID,
		SessionID: s.SessionID,
		Path:      s.Path,
		TakenAt:   s.TakenAt.UTC().Format(time.RFC3339),
		Reason:    s.Reason,
		Size:      s.Size,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
