package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotFound reports that a syntactically valid path does not resolve
// to a value in the document. Callers distinguish it from syntax errors
// with errors.Is.
var ErrNotFound = errors.New("path not found")

// SyntaxError reports a malformed path expression, e.g. unbalanced
// brackets or an empty segment.
type SyntaxError struct {
	Path   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

type segment struct {
	key     string
	indices []int
}

// parsePath splits a dot/bracket path into segments. An empty path is
// valid and yields no segments (the root).
func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, nil
	}
	if strings.HasPrefix(path, ".") {
		return nil, &SyntaxError{Path: path, Reason: "leading dot"}
	}
	if strings.HasSuffix(path, ".") {
		return nil, &SyntaxError{Path: path, Reason: "trailing dot"}
	}

	var segments []segment
	for _, raw := range strings.Split(path, ".") {
		if raw == "" {
			return nil, &SyntaxError{Path: path, Reason: "empty segment"}
		}
		seg, err := parseSegment(path, raw)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// parseSegment handles one dot-separated piece, which may carry any
// number of trailing bracket accessors: "users[0][1]".
func parseSegment(path, raw string) (segment, error) {
	open := strings.Index(raw, "[")
	if open == -1 {
		if strings.Contains(raw, "]") {
			return segment{}, &SyntaxError{Path: path, Reason: "unbalanced brackets"}
		}
		return segment{key: raw}, nil
	}

	seg := segment{key: raw[:open]}
	rest := raw[open:]
	for rest != "" {
		if !strings.HasPrefix(rest, "[") {
			return segment{}, &SyntaxError{Path: path, Reason: "unexpected characters after bracket"}
		}
		close := strings.Index(rest, "]")
		if close == -1 {
			return segment{}, &SyntaxError{Path: path, Reason: "unbalanced brackets"}
		}
		body := rest[1:close]
		idx, err := strconv.Atoi(body)
		if err != nil || strings.HasPrefix(body, "+") {
			return segment{}, &SyntaxError{Path: path, Reason: fmt.Sprintf("index %q is not a number", body)}
		}
		if idx < 0 {
			return segment{}, &SyntaxError{Path: path, Reason: fmt.Sprintf("negative index %d", idx)}
		}
		seg.indices = append(seg.indices, idx)
		rest = rest[close+1:]
	}
	return seg, nil
}

// escapeKey protects gjson metacharacters so keys are matched literally.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '*', '?', '\\', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize validates a dot/bracket path and rewrites it into gjson
// notation, e.g. "items[0].tags[1]" -> "items.0.tags.1".
func Normalize(path string) (string, error) {
	segments, err := parsePath(path)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.key != "" {
			parts = append(parts, escapeKey(seg.key))
		}
		for _, idx := range seg.indices {
			parts = append(parts, strconv.Itoa(idx))
		}
	}
	return strings.Join(parts, "."), nil
}

// Select resolves path against a parsed JSON document and returns the
// selected sub-result. An empty path selects the document itself.
func Select(doc gjson.Result, path string) (gjson.Result, error) {
	normalized, err := Normalize(path)
	if err != nil {
		return gjson.Result{}, err
	}
	if normalized == "" {
		return doc, nil
	}
	result := doc.Get(normalized)
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("%q: %w", path, ErrNotFound)
	}
	return result, nil
}

// SelectValue resolves path against an already-decoded JSON value tree
// (map[string]any / []any / scalars). Navigating through a scalar, a
// missing key, or an out-of-range index all yield ErrNotFound.
func SelectValue(root any, path string) (any, error) {
	segments, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	current := root
	for _, seg := range segments {
		if seg.key != "" {
			obj, ok := current.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%q: key %q on non-object: %w", path, seg.key, ErrNotFound)
			}
			current, ok = obj[seg.key]
			if !ok {
				return nil, fmt.Errorf("%q: missing key %q: %w", path, seg.key, ErrNotFound)
			}
		}
		for _, idx := range seg.indices {
			arr, ok := current.([]any)
			if !ok {
				return nil, fmt.Errorf("%q: index %d on non-array: %w", path, idx, ErrNotFound)
			}
			if idx >= len(arr) {
				return nil, fmt.Errorf("%q: index %d out of range (len %d): %w", path, idx, len(arr), ErrNotFound)
			}
			current = arr[idx]
		}
	}
	return current, nil
}
