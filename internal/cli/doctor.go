// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Doctor command implementation for linuxblox.
//
// Command: doctor
// Short:   Check paths, permissions and the Sober install
//
// Health Checks Performed:
//   1. Settings Valid     - linuxblox settings file parses and validates
//   2. Config Path        - a Sober config path can be derived
//   3. Launch Command     - the launch command is on PATH
//   4. Sober Installed    - Sober's Flatpak data directory exists
//   5. Sober Config       - the config document loads and has a flags section
//   6. Config Writable    - the config (or its directory) is writable
//   7. ClientSettings     - legacy ClientSettings directory probe
//   8. History            - the snapshot database opens
//
// Exit Codes:
//   0   No check failed
//   1   One or more checks failed

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/linuxblox/internal/config"
	"github.com/jeranaias/linuxblox/internal/document"
)

// =============================================================================
// DOCTOR STYLES
// =============================================================================

var (
	checkPassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	checkWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	checkMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the JSON name of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the rendered marker for the check status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return checkPassStyle.Render("[OK]")
	case CheckWarn:
		return checkWarnStyle.Render("[!!]")
	case CheckFail:
		return checkFailStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), checkMsgStyle.Render(c.Message))
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + fixStyle.Render("-> "+c.Fix)
	}
	return result
}

// doctorLookPath resolves the launch command; tests replace it.
var doctorLookPath = exec.LookPath

// =============================================================================
// HANDLE DOCTOR
// =============================================================================

// HandleDoctor handles the "doctor" command.
func HandleDoctor(rt *Runtime, args Args) error {
	checks, discovery := runAllChecks(rt, args)

	passed, warned, failed := 0, 0, 0
	for _, check := range checks {
		switch check.Status {
		case CheckPass:
			passed++
		case CheckWarn:
			warned++
		case CheckFail:
			failed++
		}
	}

	if args.JSON {
		return handleDoctorJSON(rt, checks, discovery, passed, warned, failed)
	}

	fmt.Fprintln(rt.Out, TitleStyle.Render("linuxblox Doctor"))
	fmt.Fprintln(rt.Out, RenderSeparator(41))
	for _, check := range checks {
		fmt.Fprintln(rt.Out, check.Render())
	}

	if args.Verbose && len(discovery.Trace) > 0 {
		fmt.Fprintln(rt.Out)
		fmt.Fprintln(rt.Out, SectionStyle.Render("ClientSettings probe"))
		for _, line := range discovery.Trace {
			fmt.Fprintln(rt.Out, DimStyle.Render("  "+line))
		}
	}

	fmt.Fprintln(rt.Out)
	fmt.Fprintln(rt.Out, SeparatorStyle.Render(strings.Repeat("-", 41)))
	summaryParts := []string{fmt.Sprintf("%d passed", passed)}
	if warned > 0 {
		summaryParts = append(summaryParts, checkWarnStyle.Render(fmt.Sprintf("%d warning", warned)))
	}
	if failed > 0 {
		summaryParts = append(summaryParts, checkFailStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	fmt.Fprintln(rt.Out, DimStyle.Render(strings.Join(summaryParts, ", ")))

	if failed > 0 {
		return fmt.Errorf("%d health check(s) failed", failed)
	}
	return nil
}

func handleDoctorJSON(rt *Runtime, checks []*HealthCheck, discovery config.Discovery, passed, warned, failed int) error {
	jsonChecks := make([]DoctorCheck, 0, len(checks))
	for _, check := range checks {
		jsonChecks = append(jsonChecks, DoctorCheck{
			Name:    check.Name,
			Status:  check.Status.String(),
			Message: check.Message,
			Fix:     check.Fix,
		})
	}

	resp := NewJSONResponse("doctor", DoctorData{
		Checks: jsonChecks,
		Summary: DoctorSummary{
			Passed:  passed,
			Warned:  warned,
			Failed:  failed,
			Healthy: failed == 0,
		},
		Trace: discovery.Trace,
	})

	if failed > 0 {
		err := fmt.Errorf("%d health check(s) failed", failed)
		errMsg := err.Error()
		resp.Success = false
		resp.Error = &errMsg
		resp.Print(rt.Out)
		return err
	}
	return resp.Print(rt.Out)
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

func runAllChecks(rt *Runtime, args Args) ([]*HealthCheck, config.Discovery) {
	docPath := rt.DocumentPath(args)
	discovery := config.DiscoverClientSettings(os.Getenv("HOME"))

	checks := []*HealthCheck{
		checkSettingsValid(rt),
		checkDocumentPath(docPath),
		checkLaunchCommand(rt.Config),
		checkSoberInstalled(os.Getenv("HOME")),
		checkDocument(docPath, rt.Config.Sober.FlagsKey),
		checkWritable(docPath),
		checkClientSettings(discovery),
		checkHistory(rt),
	}
	return checks, discovery
}

func checkSettingsValid(rt *Runtime) *HealthCheck {
	check := &HealthCheck{Name: "Settings Valid"}

	path, err := rt.settingsPath()
	if err != nil {
		check.Status = CheckWarn
		check.Message = "Could not determine settings path; using defaults"
		check.Fix = "Set XDG_CONFIG_HOME or HOME"
		return check
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		check.Status = CheckPass
		check.Message = "Settings valid (using defaults)"
		return check
	}
	if _, err := config.LoadFrom(path); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Settings invalid: %s", err)
		check.Fix = "Run: linuxblox config reset"
		return check
	}
	check.Status = CheckPass
	check.Message = "Settings valid"
	return check
}

func checkDocumentPath(path string) *HealthCheck {
	check := &HealthCheck{Name: "Config Path"}
	if path == "" {
		check.Status = CheckFail
		check.Message = "No Sober config path: HOME is not set"
		check.Fix = "Set HOME or run: linuxblox config set sober.config_path <PATH>"
		return check
	}
	check.Status = CheckPass
	check.Message = "Sober config path: " + path
	return check
}

func checkLaunchCommand(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "Launch Command"}
	resolved, err := doctorLookPath(cfg.Launch.Command)
	if err != nil {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("'%s' not found on PATH", cfg.Launch.Command)
		check.Fix = "Install Flatpak, or run: linuxblox config set launch.command <CMD>"
		return check
	}
	check.Status = CheckPass
	check.Message = "Launch command: " + resolved
	return check
}

func checkSoberInstalled(home string) *HealthCheck {
	check := &HealthCheck{Name: "Sober Installed"}
	if home == "" {
		check.Status = CheckWarn
		check.Message = "Cannot check Sober data without HOME"
		return check
	}
	dir := filepath.Join(home, ".var", "app", config.SoberAppID)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		check.Status = CheckWarn
		check.Message = "Sober data directory not found: " + dir
		check.Fix = "Run: flatpak install flathub " + config.SoberAppID
		return check
	}
	check.Status = CheckPass
	check.Message = "Sober data directory found"
	return check
}

func checkDocument(path, key string) *HealthCheck {
	check := &HealthCheck{Name: "Sober Config"}
	doc, out := document.Load(path)

	switch out.Code {
	case document.Loaded:
		if entries, ok := doc.FlagsObject(key); ok {
			check.Status = CheckPass
			check.Message = fmt.Sprintf("Sober config loaded, %d flag(s) under '%s'", len(entries), key)
		} else {
			check.Status = CheckWarn
			check.Message = fmt.Sprintf("Sober config has no '%s' section yet", key)
			check.Fix = "Save once from linuxblox to create it"
		}
	case document.NotFound, document.Empty:
		check.Status = CheckWarn
		check.Message = out.Message()
		check.Fix = "Start Sober once, or save from linuxblox to create it"
	case document.Malformed:
		check.Status = CheckFail
		check.Message = out.Message()
		check.Fix = "Fix the JSON by hand, or restore one with: linuxblox history"
	default:
		check.Status = CheckFail
		check.Message = out.Message()
	}
	return check
}

func checkWritable(path string) *HealthCheck {
	check := &HealthCheck{Name: "Config Writable"}
	if path == "" {
		check.Status = CheckFail
		check.Message = "No path to check"
		return check
	}

	target := path
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		// Persist creates missing parents, so walk up to the first existing one.
		target = filepath.Dir(path)
		for {
			if _, err := os.Stat(target); err == nil {
				break
			}
			parent := filepath.Dir(target)
			if parent == target {
				break
			}
			target = parent
		}
	}

	if err := writable(target); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Cannot write %s: %v", target, err)
		check.Fix = "Check permissions: ls -l " + target
		return check
	}
	check.Status = CheckPass
	check.Message = "Writable: " + target
	return check
}

func checkClientSettings(d config.Discovery) *HealthCheck {
	check := &HealthCheck{Name: "ClientSettings"}
	if d.Found() {
		check.Status = CheckPass
		check.Message = "ClientSettings directory: " + filepath.Dir(d.Path)
		return check
	}
	check.Status = CheckWarn
	check.Message = "No ClientSettings directory (only needed by older Sober builds)"
	check.Fix = "Run with --verbose to see the probe trace"
	return check
}

func checkHistory(rt *Runtime) *HealthCheck {
	check := &HealthCheck{Name: "History"}
	if !rt.Config.History.Enabled {
		check.Status = CheckPass
		check.Message = "History disabled"
		return check
	}
	store, err := rt.OpenHistory()
	if err != nil {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("History unavailable: %v", err)
		check.Fix = "Run: linuxblox config set history.path <PATH>"
		return check
	}
	defer store.Close()
	snaps, err := store.List(0)
	if err != nil {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("History unreadable: %v", err)
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("History: %d snapshot(s) at %s", len(snaps), rt.Config.HistoryPath())
	return check
}
