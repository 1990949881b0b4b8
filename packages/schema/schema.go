package schema

import (
	"fmt"
	"math"
	"sort"
)

// Type is the structural type tag of a schema node.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeNull    Type = "null"
)

// Node is one node of a schema tree.
//
// Required and Properties apply when Type is object; Properties
// sub-schemas are checked only against keys present in the value, and
// keys not named in Properties are permitted. Items applies when Type
// is array. Format applies when Type is string.
type Node struct {
	Type       Type
	Required   []string
	Properties map[string]*Node
	Format     string
	Items      *Node
}

// Violation is one schema-validation failure. Location is a path into
// the validated value ("$", "$.users[0].email").
type Violation struct {
	Location string
	Reason   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Location, v.Reason)
}

// Validate checks value against node and returns every violation
// found. An empty result means the value conforms. A malformed schema
// (nil node, unknown type tag, unknown format) yields a violation at
// the offending location instead of an error or panic.
func Validate(value any, node *Node) []Violation {
	var violations []Violation
	validateAt(value, node, "$", &violations)
	return violations
}

// ValidateArrayItems requires value to be a sequence and validates
// every element against item, tagging each violation with the element
// index.
func ValidateArrayItems(value any, item *Node) []Violation {
	var violations []Violation
	arr, ok := value.([]any)
	if !ok {
		violations = append(violations, Violation{
			Location: "$",
			Reason:   fmt.Sprintf("expected array, got %s", typeName(value)),
		})
		return violations
	}
	for i, element := range arr {
		validateAt(element, item, fmt.Sprintf("$[%d]", i), &violations)
	}
	return violations
}

func validateAt(value any, node *Node, location string, violations *[]Violation) {
	if node == nil {
		*violations = append(*violations, Violation{Location: location, Reason: "schema node is nil"})
		return
	}

	if node.Type != "" && !knownType(node.Type) {
		*violations = append(*violations, Violation{
			Location: location,
			Reason:   fmt.Sprintf("schema error: unknown type %q", node.Type),
		})
		return
	}

	if node.Type != "" && !valueHasType(value, node.Type) {
		*violations = append(*violations, Violation{
			Location: location,
			Reason:   fmt.Sprintf("expected type %s, got %s", node.Type, typeName(value)),
		})
		// Structural checks below assume the declared type; stop here.
		return
	}

	switch node.Type {
	case TypeObject:
		obj, _ := value.(map[string]any)
		for _, key := range node.Required {
			if _, ok := obj[key]; !ok {
				*violations = append(*violations, Violation{
					Location: location,
					Reason:   fmt.Sprintf("missing required key %q", key),
				})
			}
		}
		for _, key := range sortedKeys(node.Properties) {
			child, ok := obj[key]
			if !ok {
				continue
			}
			validateAt(child, node.Properties[key], location+"."+key, violations)
		}
	case TypeArray:
		if node.Items != nil {
			arr, _ := value.([]any)
			for i, element := range arr {
				validateAt(element, node.Items, fmt.Sprintf("%s[%d]", location, i), violations)
			}
		}
	case TypeString:
		if node.Format != "" {
			str, _ := value.(string)
			if reason, ok := checkFormat(str, node.Format); !ok {
				*violations = append(*violations, Violation{Location: location, Reason: reason})
			}
		}
	}
}

func knownType(t Type) bool {
	switch t {
	case TypeObject, TypeArray, TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeNull:
		return true
	}
	return false
}

// valueHasType applies the structural type rules to a decoded JSON
// value. Whole-valued floats satisfy integer; any numeric value
// satisfies number.
func valueHasType(value any, t Type) bool {
	switch t {
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNull:
		return value == nil
	case TypeNumber:
		_, ok := asFloat(value)
		return ok
	case TypeInteger:
		f, ok := asFloat(value)
		return ok && f == math.Trunc(f)
	}
	return false
}

// HasType reports whether value matches the named type tag using the
// same rules as Validate's type check.
func HasType(value any, name string) (bool, error) {
	t := Type(name)
	if !knownType(t) {
		return false, fmt.Errorf("unknown type %q", name)
	}
	return valueHasType(value, t), nil
}

// TypeName returns the structural type tag for a decoded JSON value.
func TypeName(value any) string {
	return typeName(value)
}

func typeName(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, _ := asFloat(v)
		if f == math.Trunc(f) {
			return "integer"
		}
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func sortedKeys(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
