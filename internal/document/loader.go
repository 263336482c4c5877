// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Load reads the document at path. It never fails hard: every problem is
// reported through the Outcome and an empty document is returned so the
// caller can keep working. The file is never modified.
func Load(path string) (Document, Outcome) {
	if strings.TrimSpace(path) == "" {
		return EmptyDocument(), Outcome{Code: PathUnavailable}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return EmptyDocument(), readFailure(path, err)
	}

	if len(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))) == 0 {
		return EmptyDocument(), Outcome{Code: Empty, Path: path}
	}

	doc, err := Parse(data)
	if err != nil {
		return EmptyDocument(), Outcome{Code: Malformed, Detail: err.Error(), Path: path}
	}
	return doc, Outcome{Code: Loaded, Path: path}
}

func readFailure(path string, err error) Outcome {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Outcome{Code: NotFound, Path: path}
	case errors.Is(err, fs.ErrPermission):
		return Outcome{Code: AccessDenied, Detail: err.Error(), Path: path}
	default:
		return Outcome{Code: IOFailure, Detail: err.Error(), Path: path}
	}
}
