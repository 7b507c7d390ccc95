package pagination

import "strconv"

// EncodeCursor converts an entity id into its opaque cursor form, the decimal
// string of the id. There is no forgery resistance: a cursor is valid iff it
// parses back to a positive id.
func EncodeCursor(id int64) string {
	return strconv.FormatInt(id, 10)
}

// DecodeCursor parses a caller-supplied cursor back into an entity id.
// Malformed input never produces an error; it is reported as ok=false and
// callers treat it as "no matching row", yielding an empty page.
func DecodeCursor(cursor string) (id int64, ok bool) {
	id, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
