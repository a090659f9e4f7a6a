package tinfoil

import (
	"crypto/aes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gofoil/internal/common"
)

// sessionKeySize is the AES-256 key length in bytes.
const sessionKeySize = 32

// LoadPublicKey reads an RSA public key from a PEM file. Both PKIX
// ("PUBLIC KEY") and PKCS#1 ("RSA PUBLIC KEY") encodings are accepted.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidPublicKey, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: %s: no PEM block found", common.ErrInvalidPublicKey, path)
	}

	switch block.Type {
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidPublicKey, path, err)
		}
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s: not an RSA key", common.ErrInvalidPublicKey, path)
		}
		return rsaKey, nil
	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidPublicKey, path, err)
		}
		return key, nil
	}
	return nil, fmt.Errorf("%w: %s: unexpected PEM block %q", common.ErrInvalidPublicKey, path, block.Type)
}

// Encrypt wraps the payload in the reader's hybrid scheme: a fresh random
// AES-256 session key encrypts the payload in ECB mode with PKCS#7 padding,
// and the session key itself is wrapped with RSA-OAEP (SHA-256) under the
// given public key. The wrapped key is exactly pub.Size() bytes long.
//
// The session key exists only for the duration of this call and is never
// written anywhere but the returned wrapped blob.
func Encrypt(payload []byte, pub *rsa.PublicKey) (wrappedKey, ciphertext []byte, err error) {
	key := make([]byte, sessionKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, nil, fmt.Errorf("session key: %w", err)
	}
	defer wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("aes init: %w", err)
	}

	padded := pkcs7Pad(payload, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		block.Encrypt(ciphertext[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}

	wrappedKey, err = rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: key wrap: %w", common.ErrInvalidPublicKey, err)
	}

	return wrappedKey, ciphertext, nil
}

// pkcs7Pad extends data to a whole number of blocks. A full padding block is
// appended when the input is already aligned, so padding is always removable.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
