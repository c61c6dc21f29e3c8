package entity

import (
	"fmt"
	"regexp"
	"strconv"
)

// idPattern is the only accepted shape: an optional minus sign and digits.
// Signs like "+5" and surrounding whitespace are rejected.
var idPattern = regexp.MustCompile(`^-?[0-9]+$`)

// ParseID converts a path token into an article identifier.
// Any token that is not a base-10 integer yields ErrMalformedID.
// Range checks are left to the data store: "0" or "-3" are well-formed ids
// that simply never match a record.
func ParseID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty id", ErrMalformedID)
	}
	if !idPattern.MatchString(raw) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, raw)
	}
	return id, nil
}
