// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// launch_cmd.go - Launch command implementation for linuxblox.
//
// Command: launch
// Short:   Start Roblox through Sober
// Aliases: play, run
//
// The command comes from [launch] in the settings file and defaults to
// "flatpak run org.vinegarhq.Sober". Sober is detached and keeps running
// after linuxblox exits.

package cli

import (
	"fmt"
)

// HandleLaunch handles the "launch" command.
func HandleLaunch(rt *Runtime, args Args) error {
	session, closeFn := rt.OpenSession(args)
	defer closeFn()

	if !args.JSON {
		fmt.Fprintln(rt.Out, DimStyle.Render("Launching Roblox via Sober..."))
	}

	status, err := session.Launch()

	if args.JSON {
		data := LaunchData{
			Command: rt.Config.Launch.Command,
			Args:    rt.Config.Launch.Args,
			Status:  status,
		}
		if err != nil {
			resp := NewJSONErrorResponse("launch", err)
			resp.Data = data
			resp.Print(rt.Out)
			return err
		}
		return NewJSONResponse("launch", data).Print(rt.Out)
	}

	if err != nil {
		return &StatusError{Status: status, Err: err}
	}
	fmt.Fprintln(rt.Out, RenderOutcome(true, status))
	return nil
}
