// Package config handles configuration for the gofoil CLI, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"github.com/dmitrijs2005/gofoil/internal/index"
)

// Config holds runtime settings for one index-generation run.
//
// Metadata fields use pointer/slice types on purpose: a nil value means
// "not configured", and only configured fields may appear in the generated
// index document.
type Config struct {
	// FolderIDs are the Google Drive folder ids to scan (positional args).
	FolderIDs []string

	CredentialsPath string
	TokenPath       string
	OutputPath      string

	NoRecursion            bool
	AddNonROMFiles         bool
	AddFilesWithoutTitleID bool

	// Compression is the container algorithm name: off, zstd or zlib.
	Compression string
	// PublicKeyPath enables container encryption when set.
	PublicKeyPath string

	ShareFiles     bool
	ShareIndex     bool
	UploadFolderID string
	UploadMyDrive  bool

	S3Bucket    string
	S3Key       string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	// Verbosity: 0 info, 1 debug, 2 debug with source locations.
	Verbosity int

	Metadata index.Metadata
}

// LoadDefaults populates c with the documented defaults.
func (c *Config) LoadDefaults() {
	c.CredentialsPath = "credentials.json"
	c.TokenPath = "token.json"
	c.OutputPath = "index.tlf"
	c.Compression = "zstd"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
