package scanner

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gofoil/internal/common"
)

// Scanner flattens remote folder trees into a filtered list of parsed files.
type Scanner struct {
	client Client
	filter Filter
	// Recursive controls whether child folders are visited transitively.
	Recursive bool
}

func New(client Client, filter Filter, recursive bool) *Scanner {
	return &Scanner{client: client, filter: filter, Recursive: recursive}
}

// Scan visits the given root folders in input order and returns every parsed
// file that passes the filter. Within a folder, files keep their listing
// order and child folders are descended after the folder's own files.
//
// Authentication is triggered exactly once, before the first listing call.
// Any listing or auth failure aborts the whole scan: a partial result is
// never returned.
func (s *Scanner) Scan(ctx context.Context, folderIDs []string) ([]ParsedFile, error) {
	if err := s.client.EnsureAuthenticated(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrAuthFailed, err)
	}

	var result []ParsedFile
	for _, id := range folderIDs {
		if err := s.scanFolder(ctx, id, &result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *Scanner) scanFolder(ctx context.Context, folderID string, out *[]ParsedFile) error {
	files, folders, err := s.client.ListChildren(ctx, folderID)
	if err != nil {
		return fmt.Errorf("%w: folder %s: %w", common.ErrListingFailed, folderID, err)
	}

	for _, info := range files {
		parsed := NewParsedFile(info)
		if s.filter.Keep(parsed) {
			*out = append(*out, parsed)
		}
	}

	if !s.Recursive {
		return nil
	}
	for _, child := range folders {
		if err := s.scanFolder(ctx, child, out); err != nil {
			return err
		}
	}
	return nil
}
