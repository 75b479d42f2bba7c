package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodePositionToken creates an opaque cursor from a watch-history sequence
// position. Keeping the cursor opaque lets the encoding change without
// breaking clients.
func EncodePositionToken(position int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(position, 10)))
}

// DecodePositionToken parses a cursor back into a sequence position.
func DecodePositionToken(token string) (int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	position, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (position parse): %w", err)
	}
	return position, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields,
// for pagination strategies keyed on more than one column.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decoded), "|"), nil
}
