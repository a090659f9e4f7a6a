// Package scanner walks remote folder trees and turns raw file listings into
// the filtered file set an index is built from.
package scanner

import "context"

// FileInfo is a raw file descriptor as returned by the remote store.
// Size arrives as decimal text and is parsed later, when index entries
// are built.
type FileInfo struct {
	ID     string
	Name   string
	Size   string
	Shared bool
}

// Client is the remote storage collaborator the scanner depends on.
// Implementations handle transport, pagination and credential refresh
// internally; see the drive package for the Google Drive implementation.
type Client interface {
	// EnsureAuthenticated validates or refreshes credentials. It is
	// idempotent and must be cheap once a valid token is cached.
	EnsureAuthenticated(ctx context.Context) error

	// ListChildren returns all direct children of the folder, following
	// continuation tokens until the listing is exhausted. Files and child
	// folders are returned separately, each in listing order.
	ListChildren(ctx context.Context, folderID string) (files []FileInfo, folders []string, err error)

	// Upload stores a local file remotely, optionally under a parent folder,
	// and reports the new remote id and whether it is already shared.
	Upload(ctx context.Context, path string, folderID string) (id string, shared bool, err error)

	// Share grants public read access to the file. Idempotent.
	Share(ctx context.Context, fileID string) error
}
