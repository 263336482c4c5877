// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// flags_cmd.go - Flags command implementation for linuxblox.
//
// Command: flags [subcommand]
// Short:   List and change Sober fast flags
// Aliases: flag, f
//
// Subcommands:
//   list (default)          List all known flags
//   show <NAME>             Show one flag
//   enable <NAME>...        Enable flags and save
//   disable <NAME>...       Disable flags and save
//   set <NAME> <VALUE>      Set a value, enable the flag and save
//
// Examples:
//   linuxblox flags
//   linuxblox flags list --enabled
//   linuxblox flags list --category lighting --json
//   linuxblox flags enable FFlagDebugGraphicsPreferVulkan FFlagDebugDisplayFPS
//   linuxblox flags set DFIntTaskSchedulerTargetFps 240
//   linuxblox flags set DFIntCanHideGuiGroupId -- -1

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/linuxblox/internal/document"
	"github.com/jeranaias/linuxblox/internal/engine"
	"github.com/jeranaias/linuxblox/internal/flags"
	"github.com/jeranaias/linuxblox/internal/util"
)

// HandleFlags handles the "flags" command.
func HandleFlags(rt *Runtime, args Args) error {
	p := NewArgParser(args.Raw, boolOptions...)

	switch args.Subcommand {
	case "", "list", "ls":
		return handleFlagsList(rt, args, p)
	case "show", "get":
		return handleFlagsShow(rt, args, p)
	case "enable", "on":
		return handleFlagsToggle(rt, args, p, true)
	case "disable", "off":
		return handleFlagsToggle(rt, args, p, false)
	case "set":
		return handleFlagsSet(rt, args, p)
	default:
		return ErrUnknownSubcommand("flags", args.Subcommand)
	}
}

// loadSession opens a session and reconciles it with the document on disk.
// A malformed document is reported and editing continues from defaults.
func loadSession(rt *Runtime, args Args) (*engine.Session, document.Outcome, func(), error) {
	session, closeFn := rt.OpenSession(args)
	out := session.Initialize()

	if out.Code == document.Malformed {
		rt.note(args, "%s %s", WarningStyle.Render("[WARN]"), out.Message())
		return session, out, closeFn, nil
	}
	if err := outcomeErr(out); err != nil {
		closeFn()
		return nil, out, func() {}, err
	}
	return session, out, closeFn, nil
}

// =============================================================================
// LIST / SHOW
// =============================================================================

func handleFlagsList(rt *Runtime, args Args, p *ArgParser) error {
	session, out, closeFn, err := loadSession(rt, args)
	if err != nil {
		return err
	}
	defer closeFn()

	category := p.Flag("category")
	enabledOnly := p.BoolFlag("enabled")

	var selected []flags.Descriptor
	for _, d := range session.ListFlags() {
		if enabledOnly && !d.Enabled {
			continue
		}
		if category != "" && !matchCategory(d.Category, category) {
			continue
		}
		selected = append(selected, d)
	}

	if args.JSON {
		data := FlagsData{Load: outcomeData(out), Flags: make([]FlagData, 0, len(selected))}
		for _, d := range selected {
			data.Flags = append(data.Flags, flagData(d))
		}
		return NewJSONResponse("flags list", data).Print(rt.Out)
	}

	fmt.Fprintln(rt.Out, TitleStyle.Render("Sober Flags"))
	fmt.Fprintf(rt.Out, "%s\n", PathStyle.Render(session.Path()))
	fmt.Fprintln(rt.Out, DimStyle.Render(out.Message()))

	if len(selected) == 0 {
		fmt.Fprintln(rt.Out)
		fmt.Fprintln(rt.Out, DimStyle.Render("No flags match."))
		return nil
	}

	nameWidth := 0
	for _, d := range selected {
		if w := util.StringWidth(d.Name); w > nameWidth {
			nameWidth = w
		}
	}

	width := GetTerminalWidth()
	current := flags.Category(-1)
	for _, d := range selected {
		if d.Category != current {
			current = d.Category
			fmt.Fprintln(rt.Out, SectionStyle.Render(current.String()))
		}
		value := d.Value.String()
		line := fmt.Sprintf("  %s %s  %s",
			RenderCheckbox(d.Enabled),
			util.PadRight(d.Name, nameWidth),
			HighlightStyle.Render(util.PadRight(value, 8)))
		descWidth := width - nameWidth - util.StringWidth(value) - 16
		if descWidth > 10 {
			line += "  " + DimStyle.Render(util.TruncateWidth(d.Description, descWidth))
		}
		fmt.Fprintln(rt.Out, line)
	}

	enabled := 0
	for _, d := range selected {
		if d.Enabled {
			enabled++
		}
	}
	fmt.Fprintln(rt.Out)
	fmt.Fprintln(rt.Out, DimStyle.Render(fmt.Sprintf("%d of %d shown flags enabled", enabled, len(selected))))
	return nil
}

func handleFlagsShow(rt *Runtime, args Args, p *ArgParser) error {
	name := p.Positional(1)
	if name == "" {
		return ErrMissingArgument("NAME", "linuxblox flags show <NAME>")
	}

	session, _, closeFn, err := loadSession(rt, args)
	if err != nil {
		return err
	}
	defer closeFn()

	d, err := session.Registry().Get(name)
	if err != nil {
		return unknownFlag(name, session.Registry())
	}

	if args.JSON {
		return NewJSONResponse("flags show", flagData(d)).Print(rt.Out)
	}

	fmt.Fprintln(rt.Out, TitleStyle.Render(d.Name))
	fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel("Category:"), ValueStyle.Render(d.Category.String()))
	fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel("Kind:"), ValueStyle.Render(d.Kind().String()))
	fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel("Enabled:"), RenderCheckbox(d.Enabled))
	fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel("Value:"), HighlightStyle.Render(d.Value.String()))
	fmt.Fprintf(rt.Out, "  %s%s\n", RenderLabel("Description:"), ValueStyle.Render(d.Description))
	return nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

func handleFlagsToggle(rt *Runtime, args Args, p *ArgParser, enabled bool) error {
	action := "disable"
	if enabled {
		action = "enable"
	}
	names := p.PositionalFrom(1)
	if len(names) == 0 {
		return ErrMissingArgument("NAME", fmt.Sprintf("linuxblox flags %s <NAME>...", action))
	}

	session, _, closeFn, err := loadSession(rt, args)
	if err != nil {
		return err
	}
	defer closeFn()

	// Validate every name before touching anything.
	for _, name := range names {
		if !session.Registry().Has(name) {
			return unknownFlag(name, session.Registry())
		}
	}
	for _, name := range names {
		if err := session.SetEnabled(name, enabled); err != nil {
			return err
		}
	}

	return saveAndReport(rt, args, session, "flags "+action, names)
}

func handleFlagsSet(rt *Runtime, args Args, p *ArgParser) error {
	name := p.Positional(1)
	if name == "" || p.PositionalCount() < 3 {
		return ErrMissingArgument("VALUE", "linuxblox flags set <NAME> <VALUE>")
	}
	value := strings.Join(p.PositionalFrom(2), " ")

	session, _, closeFn, err := loadSession(rt, args)
	if err != nil {
		return err
	}
	defer closeFn()

	if !session.Registry().Has(name) {
		return unknownFlag(name, session.Registry())
	}
	if d, _ := session.Registry().Get(name); d.Kind() == flags.KindToggle {
		v := strings.TrimSpace(value)
		if !strings.EqualFold(v, "true") && !strings.EqualFold(v, "false") {
			return &UsageError{
				Message: fmt.Sprintf("%s is a toggle flag: value must be true or false, got %q", name, value),
				Usage:   "linuxblox flags set <NAME> <true|false>",
			}
		}
	}
	if err := session.SetText(name, value); err != nil {
		return err
	}
	if !p.BoolFlag("no-enable") {
		if err := session.SetEnabled(name, true); err != nil {
			return err
		}
	}

	return saveAndReport(rt, args, session, "flags set", []string{name})
}

// saveAndReport saves the session and prints the changed flags.
func saveAndReport(rt *Runtime, args Args, session *engine.Session, command string, names []string) error {
	out := session.Save()

	if args.JSON {
		data := FlagsChangeData{Save: outcomeData(out)}
		for _, name := range names {
			if d, err := session.Registry().Get(name); err == nil {
				data.Changed = append(data.Changed, flagData(d))
			}
		}
		if err := outcomeErr(out); err != nil {
			resp := NewJSONErrorResponse(command, err)
			resp.ErrorType = out.Code.String()
			resp.Data = data
			resp.Print(rt.Out)
			return err
		}
		return NewJSONResponse(command, data).Print(rt.Out)
	}

	if err := outcomeErr(out); err != nil {
		return err
	}
	for _, name := range names {
		d, err := session.Registry().Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(rt.Out, "  %s %s = %s\n", RenderCheckbox(d.Enabled), d.Name, HighlightStyle.Render(d.Value.String()))
	}
	fmt.Fprintln(rt.Out, RenderOutcome(true, out.Message()))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// matchCategory matches a category by case-insensitive name prefix.
func matchCategory(c flags.Category, query string) bool {
	return strings.HasPrefix(strings.ToLower(c.String()), strings.ToLower(strings.TrimSpace(query)))
}

func flagData(d flags.Descriptor) FlagData {
	return FlagData{
		Name:        d.Name,
		Category:    d.Category.String(),
		Kind:        d.Kind().String(),
		Enabled:     d.Enabled,
		Value:       d.Value.String(),
		Description: d.Description,
	}
}
