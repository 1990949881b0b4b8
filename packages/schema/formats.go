package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// String format tags accepted on type: string nodes.
const (
	FormatEmail    = "email"
	FormatDateTime = "date-time-iso"
	FormatUUID     = "uuid"
	FormatURL      = "url"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Canonical 8-4-4-4-12 hex groups; uuid.Parse alone also accepts
	// braced and un-hyphenated forms.
	uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// checkFormat applies a named string format. An unknown format tag is
// treated as a schema authoring error.
func checkFormat(s, format string) (reason string, ok bool) {
	switch format {
	case FormatEmail:
		if !emailRe.MatchString(s) {
			return fmt.Sprintf("%q is not a valid email address", s), false
		}
	case FormatDateTime:
		for _, layout := range dateTimeLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return "", true
			}
		}
		return fmt.Sprintf("%q is not an ISO-8601 date-time", s), false
	case FormatUUID:
		if !uuidRe.MatchString(s) {
			return fmt.Sprintf("%q is not a canonical UUID", s), false
		}
		if _, err := uuid.Parse(s); err != nil {
			return fmt.Sprintf("%q is not a valid UUID: %v", s, err), false
		}
	case FormatURL:
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Sprintf("%q is not a valid URL", s), false
		}
	default:
		return fmt.Sprintf("schema error: unknown format %q", format), false
	}
	return "", true
}
