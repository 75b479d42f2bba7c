package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodePositionToken(t *testing.T) {
	for _, position := range []int64{0, 1, 42, 1<<62 - 1, -1} {
		token := EncodePositionToken(position)
		assert.NotEmpty(t, token, "Token should not be empty")

		decoded, err := DecodePositionToken(token)
		assert.NoError(t, err, "Decoding should not return an error")
		assert.Equal(t, position, decoded, "Position should match after decode")
	}
}

func TestDecodePositionTokenError(t *testing.T) {
	// Invalid base64
	_, err := DecodePositionToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Valid base64 but not a number
	_, err = DecodePositionToken(EncodeMultiFieldToken("not-a-number"))
	assert.Error(t, err, "Should return an error for a non-numeric payload")
	assert.Contains(t, err.Error(), "position parse", "Error should mention position parsing")
}

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	fields := []string{"2023-05-15", "some-id", "17"}

	token := EncodeMultiFieldToken(fields...)
	assert.NotEmpty(t, token)

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded, "Fields should match after decode")
}
