package expect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userSchema = `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id": {"type": "integer"},
		"name": {"type": "string", "minLength": 1}
	}
}`

func TestChain_MatchesJSONSchema(t *testing.T) {
	valid := jsonResponse(200, `{"id": 1, "name": "John"}`)
	assert.NoError(t, New(valid).Body("").MatchesJSONSchema([]byte(userSchema)).Err())

	invalid := jsonResponse(200, `{"id": "x"}`)
	err := New(invalid).Body("").MatchesJSONSchema([]byte(userSchema)).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestChain_MatchesJSONSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(userSchema), 0o644))

	resp := jsonResponse(200, `{"id": 1, "name": "John"}`)
	assert.NoError(t, New(resp).Body("").MatchesJSONSchemaFile(path).Err())

	err := New(resp).Body("").MatchesJSONSchemaFile(filepath.Join(dir, "missing.json")).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read schema file")
}
