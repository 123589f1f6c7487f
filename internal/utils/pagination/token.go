package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const cursorPrefix = "before"

// EncodeCursor creates an opaque token pointing just past the entry with the given id.
// Listing with the token resumes at the next older entry.
func EncodeCursor(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + "|" + strconv.FormatInt(id, 10)))
}

// DecodeCursor parses a token produced by EncodeCursor. An empty token decodes to 0.
func DecodeCursor(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	prefix, raw, ok := strings.Cut(string(decodedBytes), "|")
	if !ok || prefix != cursorPrefix {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid pagination token format (id parse)")
	}
	return id, nil
}
