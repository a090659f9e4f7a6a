// Package index builds the Tinfoil index document.
//
// The JSON field names below are part of the wire format consumed by the
// Tinfoil reader and must not change. Every optional field is omitted
// entirely when unset: the reader distinguishes "absent" from "empty", so
// unset fields must never serialize as null or as an empty value.
package index

// FileEntry is one downloadable file in the index.
type FileEntry struct {
	URL  string `json:"url"`
	Size uint64 `json:"size"`
}

// Index is the canonical index document.
//
// Files is always present once the index is built (an empty scan yields an
// empty list). All other fields appear only when the corresponding
// configuration value was supplied.
type Index struct {
	Files          []FileEntry `json:"files"`
	Directories    []string    `json:"directories,omitempty"`
	Success        *string     `json:"success,omitempty"`
	Referrer       *string     `json:"referrer,omitempty"`
	GoogleAPIKey   *string     `json:"googleApiKey,omitempty"`
	OneFichierKeys []string    `json:"oneFichierKeys,omitempty"`
	Headers        []string    `json:"headers,omitempty"`
	Version        *float64    `json:"version,omitempty"`
	ClientCertPub  *string     `json:"clientCertPub,omitempty"`
	ClientCertKey  *string     `json:"clientCertKey,omitempty"`
	ThemeBlackList []string    `json:"themeBlackList,omitempty"`
	ThemeWhiteList []string    `json:"themeWhiteList,omitempty"`
	ThemeError     *string     `json:"themeError,omitempty"`
}

// Metadata carries the optional reader-facing fields that are copied
// verbatim into the index. Nil pointers and nil slices mean "not configured".
type Metadata struct {
	Directories    []string
	Success        *string
	Referrer       *string
	GoogleAPIKey   *string
	OneFichierKeys []string
	Headers        []string
	Version        *float64
	ClientCertPub  *string
	ClientCertKey  *string
	ThemeBlackList []string
	ThemeWhiteList []string
	ThemeError     *string
}
