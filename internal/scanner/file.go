package scanner

// ParsedFile is a FileInfo extended with the percent-encoded form of its
// name, as used in index locators. NameEncoded is always recomputed from
// Name, never cached.
type ParsedFile struct {
	ID          string
	Name        string
	NameEncoded string
	Size        string
	Shared      bool
}

// NewParsedFile derives a ParsedFile from a raw descriptor.
func NewParsedFile(info FileInfo) ParsedFile {
	return ParsedFile{
		ID:          info.ID,
		Name:        info.Name,
		NameEncoded: PercentEncode(info.Name),
		Size:        info.Size,
		Shared:      info.Shared,
	}
}

const upperhex = "0123456789ABCDEF"

// PercentEncode escapes every byte outside [0-9A-Za-z] as %XX with uppercase
// hex digits. The Tinfoil reader expects this exact byte-level encoding, which
// is stricter than URL path escaping.
func PercentEncode(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('0' <= c && c <= '9') || ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') {
			b = append(b, c)
			continue
		}
		b = append(b, '%', upperhex[c>>4], upperhex[c&0x0F])
	}
	return string(b)
}
