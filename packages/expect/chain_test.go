package expect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verihttp/verihttp/packages/http"
	"github.com/verihttp/verihttp/packages/schema"
)

func jsonResponse(status int, body string) *http.Response {
	return http.NewResponse(status, "", map[string]string{"Content-Type": "application/json"}, []byte(body), 100*time.Millisecond)
}

func timedResponse(elapsed time.Duration) *http.Response {
	return http.NewResponse(200, "", nil, []byte(`{}`), elapsed)
}

func TestChain_BodyEquals(t *testing.T) {
	resp := jsonResponse(200, `{"name": "John"}`)

	err := New(resp).Body("name").Equals("John").Err()
	assert.NoError(t, err)
}

func TestChain_BodyMissingPath(t *testing.T) {
	resp := jsonResponse(200, `{"name": "John"}`)

	err := New(resp).Body("missing").Equals("x").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "body.missing")
}

func TestChain_BodyNestedSelection(t *testing.T) {
	resp := jsonResponse(200, `{"data": {"users": [{"email": "a@b.com"}]}}`)

	err := New(resp).Body("data.users[0].email").Equals("a@b.com").Err()
	assert.NoError(t, err)

	err = New(resp).Body("data.users[0].email").Equals("wrong@b.com").Err()
	require.Error(t, err)
	var failure *AssertionFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "body.data.users[0].email", failure.Target)
	assert.Equal(t, "wrong@b.com", failure.Expected)
	assert.Equal(t, "a@b.com", failure.Actual)
}

func TestChain_StatusAssertsInSameCall(t *testing.T) {
	err := New(jsonResponse(404, `{}`)).Status(200).Err()
	require.Error(t, err)
	var failure *AssertionFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 200, failure.Expected)
	assert.Equal(t, 404, failure.Actual)

	assert.NoError(t, New(jsonResponse(200, `{}`)).Status(200).Err())
}

func TestChain_StatusAsTargetSwitch(t *testing.T) {
	err := New(jsonResponse(204, `{}`)).Status().IsIn(200, 201, 204).Err()
	assert.NoError(t, err)
}

func TestChain_TimeTarget(t *testing.T) {
	assert.NoError(t, New(timedResponse(500*time.Millisecond)).Time().LessThan(1000).Err())

	err := New(timedResponse(1500 * time.Millisecond)).Time().LessThan(1000).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time")
	assert.Contains(t, err.Error(), "1500 < 1000")
}

func TestChain_HeaderTarget(t *testing.T) {
	resp := http.NewResponse(200, "", map[string]string{"Content-Type": "application/json; charset=utf-8"}, []byte(`{}`), 0)

	assert.NoError(t, New(resp).Header("content-type").Contains("application/json").Err())
	assert.Error(t, New(resp).Header("X-Missing").IsNotEmpty().Err())
}

func TestChain_AssertionBeforeTargetSwitch(t *testing.T) {
	err := New(jsonResponse(200, `{}`)).Equals("anything").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no target selected")
}

func TestChain_FailFastLatchesFirstFailure(t *testing.T) {
	resp := jsonResponse(200, `{"a": 1, "b": 2}`)

	chain := New(resp).Body("a").Equals(99).Body("b").Equals(2)
	err := chain.Err()
	require.Error(t, err)
	// The first failure is reported, later calls are no-ops.
	assert.Contains(t, err.Error(), "body.a")
	assert.True(t, chain.Failed())
}

func TestChain_TargetSurvivesAssertions(t *testing.T) {
	resp := jsonResponse(200, `{"items": [1, 2, 3]}`)

	err := New(resp).
		Body("items").
		HasType("array").
		HasLength(3).
		Contains(2).
		IsNotEmpty().
		Err()
	assert.NoError(t, err)
}

func TestChain_ContextLabelLastSetWins(t *testing.T) {
	resp := jsonResponse(200, `{"a": 1}`)

	err := New(resp).
		That("A").
		Body("a").Equals(1).
		That("B").
		Body("a").Equals(2).
		Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[B]")
	assert.NotContains(t, err.Error(), "[A]")
}

func TestChain_Matches(t *testing.T) {
	resp := jsonResponse(200, `{"id": "abc-123"}`)

	assert.NoError(t, New(resp).Body("id").Matches(`^[a-z]+-\d+$`).Err())
	assert.Error(t, New(resp).Body("id").Matches(`^\d+$`).Err())
	assert.Error(t, New(resp).Body("id").Matches(`[`).Err())
}

func TestChain_GreaterThan(t *testing.T) {
	resp := jsonResponse(200, `{"count": 10}`)

	assert.NoError(t, New(resp).Body("count").GreaterThan(5).Err())
	assert.Error(t, New(resp).Body("count").GreaterThan(10).Err())
}

func TestChain_HasKeys(t *testing.T) {
	resp := jsonResponse(200, `{"id": 1, "name": "x", "email": "x@y.com"}`)

	assert.NoError(t, New(resp).Body("").HasKeys("id", "name").Err())

	err := New(resp).Body("").HasKeys("id", "phone", "address").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address")
	assert.Contains(t, err.Error(), "phone")
}

func TestChain_IsJSON(t *testing.T) {
	assert.NoError(t, New(jsonResponse(200, `{"ok": true}`)).Body("").IsJSON().Err())

	plain := http.NewResponse(200, "", nil, []byte("plain text"), 0)
	err := New(plain).Body("").IsJSON().Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestChain_Satisfies(t *testing.T) {
	resp := jsonResponse(200, `{"age": 30}`)

	err := New(resp).Body("age").Satisfies(func(v any) bool {
		// Raw JSON-native value: numbers arrive as float64.
		n, ok := v.(float64)
		return ok && n >= 18
	}, "age must be an adult").Err()
	assert.NoError(t, err)

	err = New(resp).Body("age").Satisfies(func(v any) bool {
		_, ok := v.(string)
		return ok
	}, "age must be a string").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age must be a string")
}

func TestChain_SatisfiesReceivesRawJSONValue(t *testing.T) {
	// A numeric field encoded as a JSON string stays a string.
	resp := jsonResponse(200, `{"count": "42"}`)

	err := New(resp).Body("count").Satisfies(func(v any) bool {
		_, isString := v.(string)
		return isString
	}, "should be the raw string").Err()
	assert.NoError(t, err)
}

func TestChain_HasType(t *testing.T) {
	resp := jsonResponse(200, `{"n": 3, "f": 3.5, "s": "x", "arr": [], "obj": {}, "nil": null}`)

	assert.NoError(t, New(resp).Body("n").HasType("integer").Err())
	assert.NoError(t, New(resp).Body("n").HasType("number").Err())
	assert.Error(t, New(resp).Body("f").HasType("integer").Err())
	assert.NoError(t, New(resp).Body("f").HasType("number").Err())
	assert.NoError(t, New(resp).Body("arr").HasType("array").Err())
	assert.NoError(t, New(resp).Body("obj").HasType("object").Err())
	assert.NoError(t, New(resp).Body("nil").HasType("null").Err())
	assert.Error(t, New(resp).Body("s").HasType("bogus").Err())
}

func TestChain_MatchesSchemaAggregatesViolations(t *testing.T) {
	resp := jsonResponse(200, `{"id": "not-a-number", "email": "nope"}`)

	node := &schema.Node{
		Type:     schema.TypeObject,
		Required: []string{"name"},
		Properties: map[string]*schema.Node{
			"id":    {Type: schema.TypeInteger},
			"email": {Type: schema.TypeString, Format: schema.FormatEmail},
		},
	}

	err := New(resp).Body("").MatchesSchema(node).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 violations")
	assert.Contains(t, err.Error(), "$.id")
	assert.Contains(t, err.Error(), "$.email")
}

func TestChain_HasArrayItems(t *testing.T) {
	resp := jsonResponse(200, `{"ids": [1, "two", 3]}`)

	err := New(resp).Body("ids").HasArrayItems(&schema.Node{Type: schema.TypeInteger}).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$[1]")

	resp = jsonResponse(200, `{"ids": [1, 2, 3]}`)
	assert.NoError(t, New(resp).Body("ids").HasArrayItems(&schema.Node{Type: schema.TypeInteger}).Err())
}

func TestChain_ReAnchoringTargets(t *testing.T) {
	resp := http.NewResponse(201, "", map[string]string{"Location": "/users/7"}, []byte(`{"id": 7}`), 50*time.Millisecond)

	err := New(resp).
		Status(201).
		Header("Location").Equals("/users/7").
		Body("id").Equals(7).
		Time().LessThan(1000).
		Err()
	assert.NoError(t, err)
}
