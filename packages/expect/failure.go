package expect

import (
	"fmt"
	"strings"
)

// AssertionFailure describes exactly one failed assertion: the active
// context label (if any), a human-readable target description such as
// "body.data.users[0].email", and the expected/actual pair. The
// message is self-sufficient; no chain state is needed to read it.
type AssertionFailure struct {
	Label    string
	Target   string
	Reason   string
	Expected any
	Actual   any
}

func (f *AssertionFailure) Error() string {
	var b strings.Builder
	if f.Label != "" {
		fmt.Fprintf(&b, "[%s] ", f.Label)
	}
	if f.Target != "" {
		b.WriteString(f.Target)
		b.WriteString(": ")
	}
	b.WriteString(f.Reason)
	return b.String()
}
