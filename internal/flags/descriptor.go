// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flags

import (
	"strconv"
	"strings"
)

// Kind is the shape of a flag's value. It never changes after creation.
type Kind int

const (
	// KindToggle flags carry a boolean.
	KindToggle Kind = iota
	// KindInput flags carry free text (often a number).
	KindInput
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Category groups flags for presentation only.
type Category int

const (
	CategoryCore Category = iota
	CategoryRendering
	CategoryLighting
	CategoryQuality
	CategoryMenu
	CategoryTelemetry
)

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case CategoryCore:
		return "Core"
	case CategoryRendering:
		return "Rendering Backend"
	case CategoryLighting:
		return "Lighting Technology"
	case CategoryQuality:
		return "Graphics Quality"
	case CategoryMenu:
		return "Menu & UX"
	case CategoryTelemetry:
		return "Telemetry & UI"
	default:
		return "Other"
	}
}

// Value is the payload of a flag: Bool for toggles, Text for inputs.
type Value struct {
	Kind Kind
	Bool bool
	Text string
}

// Toggle builds a toggle value.
func Toggle(on bool) Value {
	return Value{Kind: KindToggle, Bool: on}
}

// Input builds an input value. Surrounding whitespace is dropped.
func Input(text string) Value {
	return Value{Kind: KindInput, Text: strings.TrimSpace(text)}
}

// String returns the textual form of the value.
func (v Value) String() string {
	if v.Kind == KindToggle {
		return strconv.FormatBool(v.Bool)
	}
	return v.Text
}

// DecodeText turns a stored textual form into a value of kind k.
// Toggles are true only for a case-insensitive "true"; anything else is false.
func DecodeText(k Kind, text string) Value {
	text = strings.TrimSpace(text)
	if k == KindToggle {
		return Toggle(strings.EqualFold(text, "true"))
	}
	return Input(text)
}

// Descriptor is one managed flag.
type Descriptor struct {
	// Name is the key used inside the document's flags object.
	Name string
	// Description is informational text for the user.
	Description string
	// Category is used to group flags on screen.
	Category Category
	// Enabled reports whether the flag is written on save.
	Enabled bool
	// Value is the current payload; Value.Kind is the flag's kind.
	Value Value
}

// Kind returns the descriptor's kind.
func (d Descriptor) Kind() Kind {
	return d.Value.Kind
}
