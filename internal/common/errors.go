// Package common defines shared constants and sentinel errors used across
// gofoil components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration errors, reported before any network or file activity.
	ErrCredentialsMissing = errors.New("credentials file missing")
	ErrUnknownCompression = errors.New("unknown compression algorithm")
	ErrNoFolderIDs        = errors.New("no folder ids provided")

	// Remote errors, fatal for the current run. No partial index is written.
	ErrAuthFailed    = errors.New("authentication failed")
	ErrListingFailed = errors.New("listing failed")

	// Index construction errors.
	ErrMalformedSize = errors.New("malformed file size")

	// Encryption errors, reported before any container bytes are written.
	ErrInvalidPublicKey = errors.New("invalid public key")
)
