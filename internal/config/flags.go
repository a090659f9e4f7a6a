package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/gofoil/internal/flagx"
)

// valueFlags are flags that consume the following argument; boolFlags do not.
// Both lists feed flagx so folder ids survive as positional arguments.
var (
	valueFlags = []string{
		"-credentials", "-token", "-o", "-output",
		"-compression", "-public-key",
		"-upload-folder-id",
		"-s3-bucket", "-s3-key", "-s3-region", "-s3-endpoint",
		"-s3-access-key", "-s3-secret-key",
		"-success", "-referrer", "-google-api-key", "-one-fichier-keys",
		"-headers", "-min-version", "-client-cert-pub", "-client-cert-key",
		"-directories", "-theme-blacklist", "-theme-whitelist", "-theme-error",
		"-v",
	}
	boolFlags = []string{
		"-no-recursion", "-add-non-nsw-files", "-add-nsw-files-without-title-id",
		"-share-files", "-share-index", "-upload-my-drive",
	}
)

// parseFlags populates Config from command-line flags and positional folder
// ids. Metadata flags only touch the Config when explicitly provided, so the
// absent/present distinction survives into the generated index.
func parseFlags(cfg *Config) {
	args := flagx.FilterFlagArgs(os.Args[1:], valueFlags, boolFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CredentialsPath, "credentials", cfg.CredentialsPath, "path to Google application credentials")
	fs.StringVar(&cfg.TokenPath, "token", cfg.TokenPath, "path to Google OAuth user token")
	fs.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "path to output index file")
	fs.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "path to output index file")

	fs.BoolVar(&cfg.NoRecursion, "no-recursion", cfg.NoRecursion, "scan only the top directory of each folder id")
	fs.BoolVar(&cfg.AddNonROMFiles, "add-non-nsw-files", cfg.AddNonROMFiles, "add files without a NSW ROM extension (NSP/NSZ/XCI/XCZ)")
	fs.BoolVar(&cfg.AddFilesWithoutTitleID, "add-nsw-files-without-title-id", cfg.AddFilesWithoutTitleID, "add files without a valid title id")

	fs.StringVar(&cfg.Compression, "compression", cfg.Compression, "index compression: off, zstd or zlib")
	fs.StringVar(&cfg.PublicKeyPath, "public-key", cfg.PublicKeyPath, "path to RSA public key; enables encryption")

	fs.BoolVar(&cfg.ShareFiles, "share-files", cfg.ShareFiles, "share all files referenced by the index")
	fs.BoolVar(&cfg.ShareIndex, "share-index", cfg.ShareIndex, "share the uploaded index file")
	fs.StringVar(&cfg.UploadFolderID, "upload-folder-id", cfg.UploadFolderID, "upload the index to this Drive folder")
	fs.BoolVar(&cfg.UploadMyDrive, "upload-my-drive", cfg.UploadMyDrive, "upload the index to My Drive")

	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "publish the index to this S3 bucket")
	fs.StringVar(&cfg.S3Key, "s3-key", cfg.S3Key, "S3 object key (defaults to the output file name)")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3 endpoint for S3-compatible backends")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "S3 access key (default credential chain if empty)")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "S3 secret key")

	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "verbosity: 0 info, 1 debug, 2 debug with source")

	success := fs.String("success", "", "success message shown by the reader")
	referrer := fs.String("referrer", "", "referrer the reader must send")
	googleAPIKey := fs.String("google-api-key", "", "google API key for gdrive: requests")
	oneFichierKeys := fs.String("one-fichier-keys", "", "comma-separated 1Fichier API keys")
	headers := fs.String("headers", "", "comma-separated custom HTTP headers")
	minVersion := fs.Float64("min-version", 0, "minimum reader version required to load the index")
	clientCertPub := fs.String("client-cert-pub", "", "client certificate public part")
	clientCertKey := fs.String("client-cert-key", "", "client certificate key part")
	directories := fs.String("directories", "", "comma-separated additional index locators")
	themeBlacklist := fs.String("theme-blacklist", "", "comma-separated theme hashes to blacklist")
	themeWhitelist := fs.String("theme-whitelist", "", "comma-separated theme hashes to whitelist")
	themeError := fs.String("theme-error", "", "custom theme error message")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Copy a metadata flag only when it was set: defaults must not
	// materialize fields in the index.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "success":
			cfg.Metadata.Success = success
		case "referrer":
			cfg.Metadata.Referrer = referrer
		case "google-api-key":
			cfg.Metadata.GoogleAPIKey = googleAPIKey
		case "one-fichier-keys":
			cfg.Metadata.OneFichierKeys = splitList(*oneFichierKeys)
		case "headers":
			cfg.Metadata.Headers = splitList(*headers)
		case "min-version":
			cfg.Metadata.Version = minVersion
		case "client-cert-pub":
			cfg.Metadata.ClientCertPub = clientCertPub
		case "client-cert-key":
			cfg.Metadata.ClientCertKey = clientCertKey
		case "directories":
			cfg.Metadata.Directories = splitList(*directories)
		case "theme-blacklist":
			cfg.Metadata.ThemeBlackList = splitList(*themeBlacklist)
		case "theme-whitelist":
			cfg.Metadata.ThemeWhiteList = splitList(*themeWhitelist)
		case "theme-error":
			cfg.Metadata.ThemeError = themeError
		}
	})

	if ids := flagx.Positionals(os.Args[1:], boolFlags); len(ids) > 0 {
		cfg.FolderIDs = ids
	}
}

// splitList turns a comma-separated flag value into a non-nil slice,
// trimming whitespace around items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
