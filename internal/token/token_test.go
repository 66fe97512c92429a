package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	signed, err := codec.Encode(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	id, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	signed, err := NewCodec("secret-a", time.Hour).Encode(7)
	require.NoError(t, err)

	_, err = NewCodec("secret-b", time.Hour).Decode(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute)

	signed, err := codec.Encode(7)
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	_, err := codec.Decode("not-a-token")
	assert.ErrorIs(t, err, ErrInvalid)
}
