package index

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gofoil/internal/common"
	"github.com/dmitrijs2005/gofoil/internal/scanner"
)

// Build assembles an Index from the filtered file list and the configured
// metadata. It is a pure function of its inputs.
//
// Each file becomes one locator entry. A size that does not parse as a
// non-negative decimal integer aborts the build and names the offending file.
func Build(files []scanner.ParsedFile, meta Metadata) (*Index, error) {
	entries := make([]FileEntry, 0, len(files))
	for _, f := range files {
		size, err := strconv.ParseUint(f.Size, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: file %q (id %s): size %q", common.ErrMalformedSize, f.Name, f.ID, f.Size)
		}
		entries = append(entries, FileEntry{
			URL:  Locator(f.ID, f.NameEncoded),
			Size: size,
		})
	}

	return &Index{
		Files:          entries,
		Directories:    meta.Directories,
		Success:        meta.Success,
		Referrer:       meta.Referrer,
		GoogleAPIKey:   meta.GoogleAPIKey,
		OneFichierKeys: meta.OneFichierKeys,
		Headers:        meta.Headers,
		Version:        meta.Version,
		ClientCertPub:  meta.ClientCertPub,
		ClientCertKey:  meta.ClientCertKey,
		ThemeBlackList: meta.ThemeBlackList,
		ThemeWhiteList: meta.ThemeWhiteList,
		ThemeError:     meta.ThemeError,
	}, nil
}

// Locator renders a remote file reference as "gdrive:<id>#<encoded-name>".
func Locator(id, nameEncoded string) string {
	return fmt.Sprintf("%s:%s#%s", common.LocatorScheme, id, nameEncoded)
}
