// Package tinfoil implements the binary container format the Tinfoil reader
// downloads and decodes. The layout is fixed by that external reader;
// changing any constant here breaks every consuming client.
//
// Container layout (format version 1):
//
//	offset 0      7-byte magic "TINFOIL"
//	offset 7      1 flag byte: compression tag ORed with the encryption bit
//	              0x00 = no compression, 0x0D = zstd, 0x0E = zlib
//	              0xF0 = payload encrypted
//	offset 8      when encrypted: RSA-wrapped AES-256 session key, exactly
//	              as long as the public key modulus
//	then          payload: the JSON index, compressed with the tagged
//	              algorithm and, when encrypted, AES-256-ECB/PKCS#7 under
//	              the session key
//
// ECB mode is an externally imposed constraint: the reader's decryption code
// expects it, so it is preserved for interoperability and is not a
// recommended pattern for anything else.
package tinfoil

// Magic identifies a Tinfoil container.
const Magic = "TINFOIL"

// Compression is the container's compression algorithm tag. Only the three
// values below are valid; the reader rejects anything else.
type Compression byte

const (
	CompressionNone Compression = 0x00
	CompressionZstd Compression = 0x0D
	CompressionZlib Compression = 0x0E
)

// encryptedFlag is ORed into the flag byte when the payload is encrypted.
const encryptedFlag byte = 0xF0

// FlagByte renders the header flag byte for the given settings.
func FlagByte(c Compression, encrypted bool) byte {
	b := byte(c)
	if encrypted {
		b |= encryptedFlag
	}
	return b
}
