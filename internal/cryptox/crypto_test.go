package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt-salt-salt-salt"))
	require.Len(t, key, 32)

	plaintext := []byte("tok_abc123")
	ciphertext, nonce, err := Seal(plaintext, key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt-salt-salt-salt"))
	other := DeriveKey([]byte("other"), []byte("salt-salt-salt-salt"))

	ciphertext, nonce, err := Seal([]byte("tok_abc123"), key)
	require.NoError(t, err)

	_, err = Open(ciphertext, nonce, other)
	assert.Error(t, err)
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	key := DeriveKey([]byte("secret"), []byte("salt-salt-salt-salt"))

	ciphertext, nonce, err := Seal([]byte("tok_abc123"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff
	_, err = Open(ciphertext, nonce, key)
	assert.Error(t, err)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey([]byte("secret"), []byte("salt"))
	b := DeriveKey([]byte("secret"), []byte("salt"))
	c := DeriveKey([]byte("secret"), []byte("other"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
