package tinfoil

import (
	"crypto/aes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gofoil/internal/common"
)

func generateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func writePublicKeyPEM(t *testing.T, pub *rsa.PublicKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "public.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))
	return path
}

// decrypt reverses Encrypt with the private key: OAEP-unwrap the session key,
// then AES-ECB decrypt and strip PKCS#7 padding.
func decrypt(t *testing.T, priv *rsa.PrivateKey, wrappedKey, ciphertext []byte) []byte {
	t.Helper()

	sessionKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, wrappedKey, nil)
	require.NoError(t, err)
	require.Len(t, sessionKey, 32)

	block, err := aes.NewCipher(sessionKey)
	require.NoError(t, err)
	require.Equal(t, 0, len(ciphertext)%aes.BlockSize)

	plain := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += aes.BlockSize {
		block.Decrypt(plain[i:i+aes.BlockSize], ciphertext[i:i+aes.BlockSize])
	}

	pad := int(plain[len(plain)-1])
	require.GreaterOrEqual(t, pad, 1)
	require.LessOrEqual(t, pad, aes.BlockSize)
	return plain[:len(plain)-pad]
}

func TestEncrypt_RoundTrip(t *testing.T) {
	key := generateKey(t)

	payloads := [][]byte{
		{},
		[]byte("short"),
		[]byte("exactly sixteen!"), // one full block, forces a padding block
		make([]byte, 4096),
	}

	for _, payload := range payloads {
		wrapped, ciphertext, err := Encrypt(payload, &key.PublicKey)
		require.NoError(t, err)

		assert.Equal(t, key.PublicKey.Size(), len(wrapped), "wrapped key must match modulus size")
		assert.Equal(t, payload, decrypt(t, key, wrapped, ciphertext))
	}
}

func TestEncrypt_FreshSessionKeyPerCall(t *testing.T) {
	key := generateKey(t)
	payload := []byte("same payload")

	w1, c1, err := Encrypt(payload, &key.PublicKey)
	require.NoError(t, err)
	w2, c2, err := Encrypt(payload, &key.PublicKey)
	require.NoError(t, err)

	assert.NotEqual(t, w1, w2)
	assert.NotEqual(t, c1, c2)
}

func TestEncrypt_KeyTooSmallForWrap(t *testing.T) {
	// crypto/rsa refuses to generate keys under 1024 bits unless overridden;
	// the undersized key is the point of this test.
	t.Setenv("GODEBUG", "rsa1024min=0")

	small, err := rsa.GenerateKey(rand.Reader, 512)
	require.NoError(t, err)

	// 512-bit modulus cannot hold a 32-byte key under OAEP/SHA-256.
	_, _, err = Encrypt([]byte("x"), &small.PublicKey)
	require.ErrorIs(t, err, common.ErrInvalidPublicKey)
}

func TestLoadPublicKey_PKIX(t *testing.T) {
	key := generateKey(t)
	path := writePublicKeyPEM(t, &key.PublicKey)

	pub, err := LoadPublicKey(path)
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(pub))
}

func TestLoadPublicKey_PKCS1(t *testing.T) {
	key := generateKey(t)
	der := x509.MarshalPKCS1PublicKey(&key.PublicKey)
	path := filepath.Join(t.TempDir(), "pkcs1.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: der}), 0o600))

	pub, err := LoadPublicKey(path)
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(pub))
}

func TestLoadPublicKey_Errors(t *testing.T) {
	key := generateKey(t)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	valid := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not pem", data: []byte("garbage")},
		{name: "truncated pem body", data: valid[:len(valid)/2]},
		{name: "truncated der", data: pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der[:len(der)/2]})},
		{name: "wrong block type", data: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "key.pem")
			require.NoError(t, os.WriteFile(path, tt.data, 0o600))

			_, err := LoadPublicKey(path)
			require.ErrorIs(t, err, common.ErrInvalidPublicKey)
		})
	}
}

func TestLoadPublicKey_MissingFile(t *testing.T) {
	_, err := LoadPublicKey(filepath.Join(t.TempDir(), "nope.pem"))
	require.ErrorIs(t, err, common.ErrInvalidPublicKey)
}
