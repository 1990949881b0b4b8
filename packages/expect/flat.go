package expect

import "fmt"

// Flat assertion surface for callers who prefer plain functions over
// chains. Each returns a descriptive error on mismatch (nil on
// success) with the same fail-fast contract as the fluent engine.

func AssertEqual(expected, actual any) error {
	if looseEqual(actual, expected) {
		return nil
	}
	return fmt.Errorf("expected %s, got %s", formatValue(expected), formatValue(actual))
}

func AssertTrue(value bool) error {
	if value {
		return nil
	}
	return fmt.Errorf("expected true, got false")
}

func AssertFalse(value bool) error {
	if !value {
		return nil
	}
	return fmt.Errorf("expected false, got true")
}

func AssertNotNull(value any) error {
	if value != nil {
		return nil
	}
	return fmt.Errorf("expected a non-null value")
}

func AssertLess(actual, bound any) error {
	a, aOK := toFloat64(actual)
	b, bOK := toFloat64(bound)
	if !aOK || !bOK {
		return fmt.Errorf("cannot compare non-numeric values %s < %s", formatValue(actual), formatValue(bound))
	}
	if a < b {
		return nil
	}
	return fmt.Errorf("expected %v < %v", a, b)
}

func AssertGreater(actual, bound any) error {
	a, aOK := toFloat64(actual)
	b, bOK := toFloat64(bound)
	if !aOK || !bOK {
		return fmt.Errorf("cannot compare non-numeric values %s > %s", formatValue(actual), formatValue(bound))
	}
	if a > b {
		return nil
	}
	return fmt.Errorf("expected %v > %v", a, b)
}

func AssertIn(value any, options ...any) error {
	for _, option := range options {
		if looseEqual(value, option) {
			return nil
		}
	}
	return fmt.Errorf("expected %s to be one of %v", formatValue(value), options)
}
