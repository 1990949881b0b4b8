package expect

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/verihttp/verihttp/packages/http"
	"github.com/verihttp/verihttp/packages/schema"
	"github.com/verihttp/verihttp/packages/selector"
)

type targetKind int

const (
	kindUnset targetKind = iota
	kindBody
	kindStatus
	kindHeader
	kindTime
)

// Chain evaluates assertions against one Response. See the package
// documentation for the target/state model.
type Chain struct {
	resp    *http.Response
	kind    targetKind
	desc    string
	value   any
	label   string
	failure *AssertionFailure
}

// New wraps a response in a fresh chain with no target selected.
func New(resp *http.Response) *Chain {
	return &Chain{resp: resp}
}

// That sets the context label that prefixes every subsequent failure.
// The last label set wins; there is no nesting and no pop.
func (c *Chain) That(label string) *Chain {
	if c.failure != nil {
		return c
	}
	c.label = label
	return c
}

// Err returns the first assertion failure, or nil if every assertion
// passed so far.
func (c *Chain) Err() error {
	if c.failure == nil {
		return nil
	}
	return c.failure
}

// Failed reports whether the chain has latched a failure.
func (c *Chain) Failed() bool {
	return c.failure != nil
}

func (c *Chain) fail(reason string, expected, actual any) *Chain {
	c.failure = &AssertionFailure{
		Label:    c.label,
		Target:   c.desc,
		Reason:   reason,
		Expected: expected,
		Actual:   actual,
	}
	return c
}

// Body re-anchors the target on the value selected from the JSON body.
// An empty path selects the whole body. A missing path or malformed
// path expression latches a failure immediately.
func (c *Chain) Body(path string) *Chain {
	if c.failure != nil {
		return c
	}
	c.kind = kindBody
	c.desc = "body"
	if path != "" {
		c.desc = "body." + path
	}

	doc, ok := c.resp.JSON()
	if !ok {
		if path == "" {
			// Non-JSON bodies stay assertable as raw text.
			c.value = c.resp.BodyString()
			return c
		}
		return c.fail("response body is not valid JSON", path, c.resp.BodyString())
	}

	result, err := selector.Select(doc, path)
	if err != nil {
		if errors.Is(err, selector.ErrNotFound) {
			return c.fail(fmt.Sprintf("path not found: %v", err), path, nil)
		}
		return c.fail(fmt.Sprintf("malformed path: %v", err), path, nil)
	}
	c.value = result.Value()
	return c
}

// Status re-anchors the target on the status code. With an argument it
// also asserts equality in the same call.
func (c *Chain) Status(expected ...int) *Chain {
	if c.failure != nil {
		return c
	}
	c.kind = kindStatus
	c.desc = "status"
	c.value = c.resp.StatusCode
	if len(expected) > 0 && c.resp.StatusCode != expected[0] {
		return c.fail(
			fmt.Sprintf("expected status %d, got %d", expected[0], c.resp.StatusCode),
			expected[0], c.resp.StatusCode)
	}
	return c
}

// Header re-anchors the target on the named header's value. Lookup is
// case-insensitive; a missing header yields the empty string.
func (c *Chain) Header(name string) *Chain {
	if c.failure != nil {
		return c
	}
	c.kind = kindHeader
	c.desc = "header." + name
	c.value = c.resp.Header(name)
	return c
}

// Time re-anchors the target on the elapsed time in milliseconds.
func (c *Chain) Time() *Chain {
	if c.failure != nil {
		return c
	}
	c.kind = kindTime
	c.desc = "time"
	c.value = c.resp.DurationMs()
	return c
}

// ready guards value assertions: they are defined only after a target
// switch.
func (c *Chain) ready() bool {
	if c.failure != nil {
		return false
	}
	if c.kind == kindUnset {
		c.fail("no target selected: call Body, Status, Header or Time first", nil, nil)
		return false
	}
	return true
}

// Equals asserts the current target equals expected. Numeric values
// compare by value regardless of Go type.
func (c *Chain) Equals(expected any) *Chain {
	if !c.ready() {
		return c
	}
	if !looseEqual(c.value, expected) {
		return c.fail(
			fmt.Sprintf("expected %s, got %s", formatValue(expected), formatValue(c.value)),
			expected, c.value)
	}
	return c
}

// Contains asserts substring presence on strings, membership on
// arrays and key presence on objects.
func (c *Chain) Contains(expected any) *Chain {
	if !c.ready() {
		return c
	}
	ok, reason := contains(c.value, expected)
	if !ok {
		return c.fail(reason, expected, c.value)
	}
	return c
}

// Matches asserts the target's string form against a regular
// expression.
func (c *Chain) Matches(pattern string) *Chain {
	if !c.ready() {
		return c
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return c.fail(fmt.Sprintf("invalid regex pattern %q: %v", pattern, err), pattern, c.value)
	}
	str := fmt.Sprintf("%v", c.value)
	if !re.MatchString(str) {
		return c.fail(fmt.Sprintf("expected %q to match /%s/", str, pattern), pattern, c.value)
	}
	return c
}

// LessThan asserts a numeric target is strictly below expected.
func (c *Chain) LessThan(expected float64) *Chain {
	return c.compareNumeric(expected, "<", func(a, b float64) bool { return a < b })
}

// GreaterThan asserts a numeric target is strictly above expected.
func (c *Chain) GreaterThan(expected float64) *Chain {
	return c.compareNumeric(expected, ">", func(a, b float64) bool { return a > b })
}

func (c *Chain) compareNumeric(expected float64, op string, cmp func(a, b float64) bool) *Chain {
	if !c.ready() {
		return c
	}
	actual, ok := toFloat64(c.value)
	if !ok {
		return c.fail(fmt.Sprintf("cannot compare non-numeric value %s", formatValue(c.value)), expected, c.value)
	}
	if !cmp(actual, expected) {
		return c.fail(fmt.Sprintf("expected %v %s %v", actual, op, expected), expected, c.value)
	}
	return c
}

// HasLength asserts the length of a string, array or object target.
func (c *Chain) HasLength(expected int) *Chain {
	if !c.ready() {
		return c
	}
	length, ok := computeLength(c.value)
	if !ok {
		return c.fail(fmt.Sprintf("cannot take length of %s", formatValue(c.value)), expected, c.value)
	}
	if length != expected {
		return c.fail(fmt.Sprintf("expected length %d, got %d", expected, length), expected, length)
	}
	return c
}

// IsJSON asserts the target parses as JSON. On the body target this
// checks the response body; on a header target it checks the header
// value. Non-JSON input fails cleanly, it never panics.
func (c *Chain) IsJSON() *Chain {
	if !c.ready() {
		return c
	}
	switch c.kind {
	case kindBody:
		if _, ok := c.resp.JSON(); !ok {
			return c.fail("response body is not valid JSON", "valid JSON", c.resp.BodyString())
		}
	case kindHeader:
		str, _ := c.value.(string)
		if !gjson.Valid(str) {
			return c.fail("value is not valid JSON", "valid JSON", c.value)
		}
	default:
		return c.fail("IsJSON applies to body or header targets", "valid JSON", c.value)
	}
	return c
}

// HasKeys asserts the target is an object containing every named key.
func (c *Chain) HasKeys(keys ...string) *Chain {
	if !c.ready() {
		return c
	}
	obj, ok := c.value.(map[string]any)
	if !ok {
		return c.fail(fmt.Sprintf("expected object, got %s", schema.TypeName(c.value)), keys, c.value)
	}
	var missing []string
	for _, key := range keys {
		if _, present := obj[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return c.fail(fmt.Sprintf("missing keys %v", missing), keys, c.value)
	}
	return c
}

// IsNotEmpty asserts the target is non-nil and, for strings, arrays
// and objects, non-empty.
func (c *Chain) IsNotEmpty() *Chain {
	if !c.ready() {
		return c
	}
	if c.value == nil {
		return c.fail("expected a non-empty value, got null", "non-empty", c.value)
	}
	if length, ok := computeLength(c.value); ok && length == 0 {
		return c.fail("expected a non-empty value", "non-empty", c.value)
	}
	return c
}

// IsIn asserts the target equals one of the given options.
func (c *Chain) IsIn(options ...any) *Chain {
	if !c.ready() {
		return c
	}
	for _, option := range options {
		if looseEqual(c.value, option) {
			return c
		}
	}
	return c.fail(fmt.Sprintf("expected %s to be one of %v", formatValue(c.value), options), options, c.value)
}

// Satisfies applies a caller-supplied predicate to the raw JSON-native
// target value; no coercion is performed. The message names the
// predicate in the failure.
func (c *Chain) Satisfies(pred func(value any) bool, message string) *Chain {
	if !c.ready() {
		return c
	}
	if pred == nil {
		return c.fail("nil predicate", message, c.value)
	}
	if !pred(c.value) {
		if message == "" {
			message = "predicate not satisfied"
		}
		return c.fail(message, message, c.value)
	}
	return c
}

// HasType asserts the target's structural type tag (object, array,
// string, integer, number, boolean, null) using the schema package's
// type rules.
func (c *Chain) HasType(name string) *Chain {
	if !c.ready() {
		return c
	}
	ok, err := schema.HasType(c.value, name)
	if err != nil {
		return c.fail(err.Error(), name, c.value)
	}
	if !ok {
		return c.fail(
			fmt.Sprintf("expected type %s, got %s", name, schema.TypeName(c.value)),
			name, schema.TypeName(c.value))
	}
	return c
}

// MatchesSchema validates the target against a structural schema node
// and aggregates every violation into a single failure.
func (c *Chain) MatchesSchema(node *schema.Node) *Chain {
	if !c.ready() {
		return c
	}
	return c.reportViolations(schema.Validate(c.value, node))
}

// HasArrayItems requires the target to be an array and validates
// every element against item, reporting all failing indices at once.
func (c *Chain) HasArrayItems(item *schema.Node) *Chain {
	if !c.ready() {
		return c
	}
	return c.reportViolations(schema.ValidateArrayItems(c.value, item))
}

func (c *Chain) reportViolations(violations []schema.Violation) *Chain {
	if len(violations) == 0 {
		return c
	}
	reasons := make([]string, len(violations))
	for i, v := range violations {
		reasons[i] = v.String()
	}
	return c.fail(
		fmt.Sprintf("schema validation failed (%d violations): %s",
			len(violations), joinSemicolon(reasons)),
		"conforming value", c.value)
}
