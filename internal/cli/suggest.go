// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Suggestions for mistyped commands and flag names.
package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/linuxblox/internal/flags"
)

// validCommands is the list of all valid commands and their aliases.
var validCommands = []string{
	"tui",
	"edit",
	"flags",
	"flag",
	"launch",
	"play",
	"run",
	"config",
	"history",
	"snapshots",
	"doctor",
	"version",
	"help",
}

// SuggestCommand returns a close valid command, or "".
func SuggestCommand(input string) string {
	return closest(strings.ToLower(input), validCommands, false)
}

// SuggestFlag returns the closest known flag name, or "". Flag names are
// long, so matching is case-insensitive with a looser threshold.
func SuggestFlag(input string, names []string) string {
	return closest(input, names, true)
}

// unknownFlag builds an ErrUnknownFlag error with a suggestion when one exists.
func unknownFlag(name string, reg *flags.Registry) error {
	err := error(&flags.FlagError{Name: name, Err: flags.ErrUnknownFlag})
	names := make([]string, 0, reg.Len())
	for _, d := range reg.List() {
		names = append(names, d.Name)
	}
	if s := SuggestFlag(name, names); s != "" {
		return fmt.Errorf("%w (did you mean %s?)", err, s)
	}
	return err
}

func closest(input string, candidates []string, foldCase bool) string {
	if len(input) < 2 {
		return ""
	}

	// Allow 1 edit for very short input, 2 up to 8 chars, then 3; flag names
	// get a quarter of their length.
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}
	if foldCase && len(input)/4 > maxDistance {
		maxDistance = len(input) / 4
	}

	bestMatch := ""
	bestDistance := -1
	for _, c := range candidates {
		a, b := input, c
		if foldCase {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		distance := levenshteinDistance(a, b)
		if distance == 0 {
			if foldCase && input != c {
				return c
			}
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = c
		}
	}
	return bestMatch
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	cols := len(s2) + 1

	// Two rows instead of a full matrix
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}
