package helpers

import (
	"fmt"
	"time"
)

// UserETag derives the weak validator for a user resource from its identifier
// and last-modified time, e.g. W/"user-6f3e...-1761234567". Identical
// (id, updatedAt-second) pairs always yield the identical token; any applied
// write moves updatedAt and therefore the token.
func UserETag(id string, updatedAt time.Time) string {
	return fmt.Sprintf(`W/"user-%s-%d"`, id, updatedAt.Unix())
}

// ETagMatch compares a client-supplied precondition value against the current
// token. Comparison is exact; an empty header never matches.
func ETagMatch(header, current string) bool {
	return header != "" && header == current
}
