// Package common contains shared constants and sentinel errors used across
// gofoil components.
package common

// FolderMimeType is the MIME type Google Drive assigns to folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// LocatorScheme is the protocol prefix Tinfoil expects on Google Drive
// file locators.
const LocatorScheme = "gdrive"
