// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/jeranaias/linuxblox/internal/flags"
	"github.com/jeranaias/linuxblox/internal/util"
)

// RenderOptions tunes how the flags object is rebuilt.
type RenderOptions struct {
	// KeepUnmanaged carries over entries of the previous flags object whose
	// names are not in the registry. Managed entries are always rebuilt.
	KeepUnmanaged bool
}

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// Render returns doc with the flags object under key replaced by one built
// from the enabled descriptors. Disabled descriptors contribute nothing, so a
// stale entry for them disappears. All other top-level keys keep their bytes.
func Render(doc Document, key string, descs []flags.Descriptor, opts RenderOptions) (Document, error) {
	obj := []byte("{}")
	var err error

	if opts.KeepUnmanaged {
		managed := make(map[string]bool, len(descs))
		for _, d := range descs {
			managed[d.Name] = true
		}
		old, _ := doc.FlagsObject(key)
		for _, e := range old {
			if managed[e.Name] {
				continue
			}
			if obj, err = sjson.SetRawBytes(obj, escapePath(e.Name), []byte(e.Value.Raw)); err != nil {
				return Document{}, fmt.Errorf("keep flag %q: %w", e.Name, err)
			}
		}
	}

	for _, d := range descs {
		if !d.Enabled {
			continue
		}
		if obj, err = setFlag(obj, d); err != nil {
			return Document{}, fmt.Errorf("encode flag %q: %w", d.Name, err)
		}
	}

	// Only the first copy of a repeated flags key survives.
	out, err := sjson.SetRawBytes(doc.withoutRepeats(key).Bytes(), escapePath(key), obj)
	if err != nil {
		return Document{}, fmt.Errorf("replace %q: %w", key, err)
	}
	return Document{raw: out}, nil
}

func setFlag(obj []byte, d flags.Descriptor) ([]byte, error) {
	path := escapePath(d.Name)
	if d.Kind() == flags.KindToggle {
		return sjson.SetBytes(obj, path, d.Value.Bool)
	}
	if n, ok := integerText(d.Value.Text); ok {
		return sjson.SetRawBytes(obj, path, []byte(n))
	}
	return sjson.SetBytes(obj, path, d.Value.Text)
}

// integerText reports whether s is a canonical base-10 integer, so that
// writing it as a JSON number and reading it back yields the same text.
// "007" and "+5" stay strings.
func integerText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "", false
	}
	canonical := strconv.FormatInt(n, 10)
	return canonical, canonical == s
}

// escapePath makes a literal key safe to use as an sjson path.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '#', '|', '@', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Persist writes doc to path as indented JSON, creating parent directories.
// The write goes through a temp file and rename. An existing file keeps its
// permission bits, plus owner write. Symlinks are followed so the link
// itself survives.
func Persist(path string, doc Document) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathUnavailable
	}

	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm() | 0o200
	}

	data := pretty.PrettyOptions(doc.Bytes(), prettyOptions)
	if err := util.AtomicWriteFile(target, data, perm); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// SaveOutcome converts a Persist error into an Outcome.
func SaveOutcome(path string, err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Code: Saved, Path: path}
	case errors.Is(err, ErrPathUnavailable):
		return Outcome{Code: PathUnavailable, Path: path}
	case errors.Is(err, ErrAccessDenied):
		return Outcome{Code: AccessDenied, Detail: err.Error(), Path: path}
	default:
		return Outcome{Code: IOFailure, Detail: err.Error(), Path: path}
	}
}
