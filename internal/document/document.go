// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// DefaultFlagsKey is the top-level key Sober reads flags from.
const DefaultFlagsKey = "fflags"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// errNotObject is returned by Parse for JSON whose root is not an object.
var errNotObject = errors.New("top-level JSON value is not an object")

// Document is a JSON object held as raw bytes. The zero value is an empty
// object.
type Document struct {
	raw []byte
}

// EmptyDocument returns a document with no keys.
func EmptyDocument() Document {
	return Document{raw: []byte("{}")}
}

// Parse validates data and wraps it. The root must be a JSON object.
func Parse(data []byte) (Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	// encoding/json reports the offset of the first syntax error; gjson only
	// says yes or no.
	if err := json.Unmarshal(data, new(json.RawMessage)); err != nil {
		return Document{}, err
	}
	if !gjson.ParseBytes(data).IsObject() {
		return Document{}, errNotObject
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return Document{raw: raw}, nil
}

// Bytes returns a copy of the document's JSON.
func (d Document) Bytes() []byte {
	if len(d.raw) == 0 {
		return []byte("{}")
	}
	out := make([]byte, len(d.raw))
	copy(out, d.raw)
	return out
}

func (d Document) root() gjson.Result {
	if len(d.raw) == 0 {
		return gjson.Parse("{}")
	}
	return gjson.ParseBytes(d.raw)
}

// Keys returns the top-level keys in document order.
func (d Document) Keys() []string {
	var keys []string
	d.root().ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.Str)
		return true
	})
	return keys
}

// IsEmpty reports whether the document has no keys.
func (d Document) IsEmpty() bool {
	return len(d.Keys()) == 0
}

// Lookup returns the value stored under the exact top-level key. Keys are
// matched literally, so names with dots or wildcards are safe. The first
// occurrence wins when a key is repeated.
func (d Document) Lookup(key string) (gjson.Result, bool) {
	var found gjson.Result
	ok := false
	d.root().ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// withoutRepeats returns d with every occurrence of key after the first
// removed, together with its leading comma.
func (d Document) withoutRepeats(key string) Document {
	root := d.root()
	var cuts [][2]int
	prevEnd, seen := -1, false
	root.ForEach(func(k, v gjson.Result) bool {
		end := v.Index + len(v.Raw)
		if k.Str == key {
			if seen {
				cuts = append(cuts, [2]int{prevEnd, end})
				prevEnd = end
				return true
			}
			seen = true
		}
		prevEnd = end
		return true
	})
	if len(cuts) == 0 {
		return d
	}

	raw := []byte(root.Raw)
	out := make([]byte, 0, len(raw))
	last := 0
	for _, c := range cuts {
		out = append(out, raw[last:c[0]]...)
		last = c[1]
	}
	out = append(out, raw[last:]...)
	return Document{raw: out}
}

// Entry is one name/value pair of a flags object.
type Entry struct {
	Name  string
	Value gjson.Result
}

// FlagsObject returns the entries of the object stored under key, in
// document order. ok is false when the key is absent or not an object.
func (d Document) FlagsObject(key string) (entries []Entry, ok bool) {
	v, found := d.Lookup(key)
	if !found || !v.IsObject() {
		return nil, false
	}
	v.ForEach(func(k, val gjson.Result) bool {
		entries = append(entries, Entry{Name: k.Str, Value: val})
		return true
	})
	return entries, true
}

// TextOf returns the textual form of a stored flag value: strings verbatim,
// numbers and nested JSON as their raw tokens, booleans as "true"/"false".
// ok is false for null or missing values.
func TextOf(v gjson.Result) (text string, ok bool) {
	switch v.Type {
	case gjson.Null:
		return "", false
	case gjson.String:
		return v.Str, true
	case gjson.True:
		return "true", true
	case gjson.False:
		return "false", true
	default:
		return v.Raw, true
	}
}

// String implements fmt.Stringer for logging.
func (d Document) String() string {
	return fmt.Sprintf("document(%d keys, %d bytes)", len(d.Keys()), len(d.raw))
}
