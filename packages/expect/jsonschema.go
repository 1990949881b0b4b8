package expect

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// MatchesJSONSchema validates the current target against a full JSON
// Schema document, delegating to gojsonschema. Use MatchesSchema for
// the lightweight structural vocabulary.
func (c *Chain) MatchesJSONSchema(schemaJSON []byte) *Chain {
	if !c.ready() {
		return c
	}

	actualJSON, err := json.Marshal(c.value)
	if err != nil {
		return c.fail(fmt.Sprintf("marshal target value: %v", err), "conforming value", c.value)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(actualJSON))
	if err != nil {
		return c.fail(fmt.Sprintf("schema validation error: %v", err), "conforming value", c.value)
	}
	if result.Valid() {
		return c
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}
	return c.fail(
		fmt.Sprintf("schema validation failed: %s", strings.Join(reasons, "; ")),
		"conforming value", c.value)
}

// MatchesJSONSchemaFile reads a JSON Schema document from disk and
// validates the current target against it.
func (c *Chain) MatchesJSONSchemaFile(path string) *Chain {
	if !c.ready() {
		return c
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c.fail(fmt.Sprintf("read schema file: %v", err), path, c.value)
	}
	return c.MatchesJSONSchema(data)
}
