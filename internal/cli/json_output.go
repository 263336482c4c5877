// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripting linuxblox.
//
// Every command accepts --json and then writes exactly one JSONResponse to
// stdout. Human-readable notes go to stderr in that mode.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSONResponse is the response envelope for all commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// ErrorType classifies Error (e.g. "usage_error", "access_denied")
	ErrorType string `json:"error_type,omitempty"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// OutcomeData describes a document load or save.
type OutcomeData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Path    string `json:"path"`
}

// FlagData is one flag as shown by flags list/show.
type FlagData struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Kind        string `json:"kind"`
	Enabled     bool   `json:"enabled"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// FlagsData is returned by flags list.
type FlagsData struct {
	Load  OutcomeData `json:"load"`
	Flags []FlagData  `json:"flags"`
}

// FlagsChangeData is returned by flags enable/disable/set.
type FlagsChangeData struct {
	Changed []FlagData  `json:"changed"`
	Save    OutcomeData `json:"save"`
}

// LaunchData is returned by launch.
type LaunchData struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Status  string   `json:"status"`
}

// ConfigData is returned by config show.
type ConfigData struct {
	Values       map[string]interface{} `json:"values"`
	Path         string                 `json:"path"`
	DocumentPath string                 `json:"document_path"`
}

// SnapshotData is one history entry.
type SnapshotData struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	TakenAt   string `json:"taken_at"`
	Reason    string `json:"reason"`
	Size      int    `json:"size"`
	Content   string `json:"content,omitempty"`
}

// DoctorData represents the data returned by the doctor command.
type DoctorData struct {
	Checks  []DoctorCheck `json:"checks"`
	Summary DoctorSummary `json:"summary"`
	Trace   []string      `json:"client_settings_trace,omitempty"`
}

// DoctorCheck represents a single health check result.
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "warn", "fail"
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// DoctorSummary contains the summary of health checks.
type DoctorSummary struct {
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}
