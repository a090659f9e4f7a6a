package scanner

import (
	"regexp"
	"strings"
)

// romExtensions is the set of recognized NSW ROM file extensions.
var romExtensions = []string{".nsp", ".nsz", ".xci", ".xcz"}

// titleIDPattern matches a bracket-enclosed 16-hex-digit title id in its
// percent-encoded form, e.g. "%5B0123456789ABCDEF%5D". Compiled from a
// constant: a failure here is a programming error, hence MustCompile.
var titleIDPattern = regexp.MustCompile("%5B[0-9A-Fa-f]{16}%5D")

// Filter decides which parsed files make it into the index.
//
// Both checks are active by default and a file must pass every active check.
// Each can be switched off independently; with both off the filter accepts
// everything.
type Filter struct {
	// AllowNonROM disables the extension check.
	AllowNonROM bool
	// AllowMissingTitleID disables the title-id token check.
	AllowMissingTitleID bool
}

// Keep reports whether the file passes all active checks.
func (f Filter) Keep(file ParsedFile) bool {
	if !f.AllowNonROM && !hasROMExtension(file.Name) {
		return false
	}
	if !f.AllowMissingTitleID && !titleIDPattern.MatchString(file.NameEncoded) {
		return false
	}
	return true
}

// Apply filters files in place order-preservingly and returns the kept subset.
func (f Filter) Apply(files []ParsedFile) []ParsedFile {
	kept := make([]ParsedFile, 0, len(files))
	for _, file := range files {
		if f.Keep(file) {
			kept = append(kept, file)
		}
	}
	return kept
}

// hasROMExtension reports whether name ends with a recognized ROM extension,
// case-insensitively. Names shorter than an extension simply fail the check.
func hasROMExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range romExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
