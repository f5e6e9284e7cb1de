package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	occurredAt := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)
	rowID := "b2f4c1c0-5a0e-4c57-9a9d-2f3dd0d7d111"

	token := EncodeToken(occurredAt, rowID)
	require.NotEmpty(t, token)

	gotTime, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, occurredAt.Equal(gotTime))
	assert.Equal(t, rowID, gotID)
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	_, _, err := DecodeToken("aGVsbG8=") // "hello", no separator
	assert.Error(t, err)
}

func TestDecodeTokenBadTime(t *testing.T) {
	_, _, err := DecodeToken("Z2FyYmFnZXxpZA==") // "garbage|id"
	assert.Error(t, err)
}
