package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertEqual(t *testing.T) {
	assert.NoError(t, AssertEqual("a", "a"))
	assert.NoError(t, AssertEqual(2, float64(2)))
	assert.EqualError(t, AssertEqual(1, 2), `expected 1, got 2`)
}

func TestAssertTrueFalse(t *testing.T) {
	assert.NoError(t, AssertTrue(true))
	assert.Error(t, AssertTrue(false))
	assert.NoError(t, AssertFalse(false))
	assert.Error(t, AssertFalse(true))
}

func TestAssertNotNull(t *testing.T) {
	assert.NoError(t, AssertNotNull("x"))
	assert.NoError(t, AssertNotNull(0))
	assert.Error(t, AssertNotNull(nil))
}

func TestAssertLessGreater(t *testing.T) {
	assert.NoError(t, AssertLess(1, 2))
	assert.Error(t, AssertLess(2, 2))
	assert.NoError(t, AssertGreater(3, 2))
	assert.Error(t, AssertGreater(2, 3))
	assert.Error(t, AssertLess("a", 2))
}

func TestAssertIn(t *testing.T) {
	assert.NoError(t, AssertIn(2, 1, 2, 3))
	assert.Error(t, AssertIn(4, 1, 2, 3))
}
