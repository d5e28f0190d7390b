// Package codec converts the list-typed entry fields (secondary moods,
// tags) to and from the scalar text stored in a single column.
//
// The encoding is a JSON array of strings. Decoding never fails: empty,
// NULL, or malformed input decodes to an empty list. Only valid UTF-8
// values survive encoding unchanged; callers check with ValidateList first.
package codec

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by ValidateList for a value that is not valid
// UTF-8.
var ErrInvalidUTF8 = errors.New("list value is not valid UTF-8")

// EmptyList is the canonical encoding of an empty list.
const EmptyList = "[]"

// EncodeList returns the canonical encoding of values. nil and empty
// slices both encode to EmptyList.
func EncodeList(values []string) string {
	if len(values) == 0 {
		return EmptyList
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		// A []string always marshals; keep the column well-formed anyway.
		return EmptyList
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// ValidateList returns ErrInvalidUTF8 if any value would not survive
// EncodeList unchanged.
func ValidateList(values []string) error {
	for i, v := range values {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: item %d %q", ErrInvalidUTF8, i, v)
		}
	}
	return nil
}

// DecodeList returns the list encoded in raw. It never returns nil.
func DecodeList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}

// DecodeNullable decodes a column that may be NULL. NULL decodes to the
// same empty list as EmptyList.
func DecodeNullable(raw sql.NullString) []string {
	if !raw.Valid {
		return []string{}
	}
	return DecodeList(raw.String)
}
