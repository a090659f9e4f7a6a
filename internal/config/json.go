package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gofoil/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Every field is
// a pointer or slice so an absent key is distinguishable from a zero value;
// only present keys overlay the runtime Config.
type JsonConfig struct {
	FolderIDs       []string `json:"folder_ids"`
	CredentialsPath *string  `json:"credentials"`
	TokenPath       *string  `json:"token"`
	OutputPath      *string  `json:"output"`

	NoRecursion            *bool `json:"no_recursion"`
	AddNonROMFiles         *bool `json:"add_non_nsw_files"`
	AddFilesWithoutTitleID *bool `json:"add_nsw_files_without_title_id"`

	Compression   *string `json:"compression"`
	PublicKeyPath *string `json:"public_key"`

	ShareFiles     *bool   `json:"share_files"`
	ShareIndex     *bool   `json:"share_index"`
	UploadFolderID *string `json:"upload_folder_id"`
	UploadMyDrive  *bool   `json:"upload_my_drive"`

	S3Bucket    *string `json:"s3_bucket"`
	S3Key       *string `json:"s3_key"`
	S3Region    *string `json:"s3_region"`
	S3Endpoint  *string `json:"s3_endpoint"`
	S3AccessKey *string `json:"s3_access_key"`
	S3SecretKey *string `json:"s3_secret_key"`

	Verbosity *int `json:"verbosity"`

	Success        *string  `json:"success"`
	Referrer       *string  `json:"referrer"`
	GoogleAPIKey   *string  `json:"google_api_key"`
	OneFichierKeys []string `json:"one_fichier_keys"`
	Headers        []string `json:"headers"`
	MinVersion     *float64 `json:"min_version"`
	ClientCertPub  *string  `json:"client_cert_pub"`
	ClientCertKey  *string  `json:"client_cert_key"`
	Directories    []string `json:"directories"`
	ThemeBlackList []string `json:"theme_blacklist"`
	ThemeWhiteList []string `json:"theme_whitelist"`
	ThemeError     *string  `json:"theme_error"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies present fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.FolderIDs != nil {
		cfg.FolderIDs = jc.FolderIDs
	}
	setString(&cfg.CredentialsPath, jc.CredentialsPath)
	setString(&cfg.TokenPath, jc.TokenPath)
	setString(&cfg.OutputPath, jc.OutputPath)

	setBool(&cfg.NoRecursion, jc.NoRecursion)
	setBool(&cfg.AddNonROMFiles, jc.AddNonROMFiles)
	setBool(&cfg.AddFilesWithoutTitleID, jc.AddFilesWithoutTitleID)

	setString(&cfg.Compression, jc.Compression)
	setString(&cfg.PublicKeyPath, jc.PublicKeyPath)

	setBool(&cfg.ShareFiles, jc.ShareFiles)
	setBool(&cfg.ShareIndex, jc.ShareIndex)
	setString(&cfg.UploadFolderID, jc.UploadFolderID)
	setBool(&cfg.UploadMyDrive, jc.UploadMyDrive)

	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Key, jc.S3Key)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.Verbosity != nil {
		cfg.Verbosity = *jc.Verbosity
	}

	// Metadata: present keys transfer as-is, preserving field presence.
	if jc.Success != nil {
		cfg.Metadata.Success = jc.Success
	}
	if jc.Referrer != nil {
		cfg.Metadata.Referrer = jc.Referrer
	}
	if jc.GoogleAPIKey != nil {
		cfg.Metadata.GoogleAPIKey = jc.GoogleAPIKey
	}
	if jc.OneFichierKeys != nil {
		cfg.Metadata.OneFichierKeys = jc.OneFichierKeys
	}
	if jc.Headers != nil {
		cfg.Metadata.Headers = jc.Headers
	}
	if jc.MinVersion != nil {
		cfg.Metadata.Version = jc.MinVersion
	}
	if jc.ClientCertPub != nil {
		cfg.Metadata.ClientCertPub = jc.ClientCertPub
	}
	if jc.ClientCertKey != nil {
		cfg.Metadata.ClientCertKey = jc.ClientCertKey
	}
	if jc.Directories != nil {
		cfg.Metadata.Directories = jc.Directories
	}
	if jc.ThemeBlackList != nil {
		cfg.Metadata.ThemeBlackList = jc.ThemeBlackList
	}
	if jc.ThemeWhiteList != nil {
		cfg.Metadata.ThemeWhiteList = jc.ThemeWhiteList
	}
	if jc.ThemeError != nil {
		cfg.Metadata.ThemeError = jc.ThemeError
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
