package tinfoil

import (
	"crypto/rsa"
	"fmt"

	"github.com/dmitrijs2005/gofoil/internal/filex"
)

// Encode assembles the complete container for a serialized index: header,
// optional wrapped session key, payload. A nil public key produces an
// unencrypted container with the encryption bit cleared.
func Encode(manifest []byte, comp Compression, pub *rsa.PublicKey) ([]byte, error) {
	payload, err := comp.Compress(manifest)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	encrypted := pub != nil
	out := make([]byte, 0, len(Magic)+1+len(payload))
	out = append(out, Magic...)
	out = append(out, FlagByte(comp, encrypted))

	if encrypted {
		wrappedKey, ciphertext, err := Encrypt(payload, pub)
		if err != nil {
			return nil, fmt.Errorf("encrypt: %w", err)
		}
		out = append(out, wrappedKey...)
		out = append(out, ciphertext...)
		return out, nil
	}

	out = append(out, payload...)
	return out, nil
}

// WriteFile writes a finished container to path atomically: the destination
// either keeps its previous content or receives the complete container,
// never a partial write.
func WriteFile(path string, container []byte) error {
	if err := filex.WriteFileAtomic(path, container, 0o644); err != nil {
		return fmt.Errorf("write container: %w", err)
	}
	return nil
}
