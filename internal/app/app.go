// Package app wires the scan → filter → index → container pipeline together
// and runs one index-generation pass end to end.
package app

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gofoil/internal/common"
	"github.com/dmitrijs2005/gofoil/internal/config"
	"github.com/dmitrijs2005/gofoil/internal/index"
	"github.com/dmitrijs2005/gofoil/internal/logging"
	"github.com/dmitrijs2005/gofoil/internal/publish"
	"github.com/dmitrijs2005/gofoil/internal/scanner"
	"github.com/dmitrijs2005/gofoil/internal/tinfoil"
)

// publishUpload is swappable in tests.
var publishUpload = publish.Upload

type App struct {
	cfg      *config.Config
	logger   logging.Logger
	client   scanner.Client
	progress progressReporter
}

func New(cfg *config.Config, logger logging.Logger, client scanner.Client) *App {
	return &App{cfg: cfg, logger: logger, client: client, progress: newProgress()}
}

// Run executes one complete generation pass. The first failing step aborts
// the run; nothing is written unless every preceding stage succeeded.
func (a *App) Run(ctx context.Context) error {
	comp, pub, err := a.validate()
	if err != nil {
		return err
	}

	files, err := a.scan(ctx)
	if err != nil {
		return err
	}

	idx, err := index.Build(files, a.cfg.Metadata)
	if err != nil {
		return err
	}
	a.logger.Debug(ctx, "index built", "files", len(idx.Files))

	manifest, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("serialize index: %w", err)
	}

	container, err := tinfoil.Encode(manifest, comp, pub)
	if err != nil {
		return err
	}
	if err := tinfoil.WriteFile(a.cfg.OutputPath, container); err != nil {
		return err
	}
	a.logger.Info(ctx, "index written",
		"path", a.cfg.OutputPath,
		"compression", comp.String(),
		"encrypted", pub != nil,
		"bytes", len(container))

	if a.cfg.ShareFiles {
		if err := a.shareFiles(ctx, files); err != nil {
			return err
		}
	}

	if a.cfg.UploadMyDrive || a.cfg.UploadFolderID != "" {
		if err := a.uploadIndex(ctx); err != nil {
			return err
		}
	}

	if a.cfg.S3Bucket != "" {
		if err := a.publishS3(ctx); err != nil {
			return err
		}
	}

	return nil
}

// validate resolves everything that can fail before network or file
// activity: folder ids, credential file presence, the compression tag and,
// when configured, the public key. A bad key must surface here, before any
// output bytes exist.
func (a *App) validate() (tinfoil.Compression, *rsa.PublicKey, error) {
	if len(a.cfg.FolderIDs) == 0 {
		return 0, nil, common.ErrNoFolderIDs
	}

	if _, err := os.Stat(a.cfg.CredentialsPath); err != nil {
		return 0, nil, fmt.Errorf("%w: %s", common.ErrCredentialsMissing, a.cfg.CredentialsPath)
	}

	comp, err := tinfoil.ParseCompression(a.cfg.Compression)
	if err != nil {
		return 0, nil, err
	}

	var pub *rsa.PublicKey
	if a.cfg.PublicKeyPath != "" {
		pub, err = tinfoil.LoadPublicKey(a.cfg.PublicKeyPath)
		if err != nil {
			return 0, nil, err
		}
	}

	return comp, pub, nil
}

func (a *App) scan(ctx context.Context) ([]scanner.ParsedFile, error) {
	filter := scanner.Filter{
		AllowNonROM:         a.cfg.AddNonROMFiles,
		AllowMissingTitleID: a.cfg.AddFilesWithoutTitleID,
	}
	s := scanner.New(a.client, filter, !a.cfg.NoRecursion)

	stop := a.progress.spinner("Scanning...")
	files, err := s.Scan(ctx, a.cfg.FolderIDs)
	stop()
	if err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "scan finished", "files", len(files), "folders", len(a.cfg.FolderIDs))
	return files, nil
}

// shareFiles grants public access to every index entry that is not already
// shared.
func (a *App) shareFiles(ctx context.Context, files []scanner.ParsedFile) error {
	bar := a.progress.bar(len(files), "Sharing")
	defer bar.finish()

	for _, f := range files {
		if !f.Shared {
			if err := a.client.Share(ctx, f.ID); err != nil {
				return fmt.Errorf("share %s: %w", f.ID, err)
			}
		}
		bar.add(1)
	}

	a.logger.Info(ctx, "shared files", "count", len(files))
	return nil
}

func (a *App) uploadIndex(ctx context.Context) error {
	id, shared, err := a.client.Upload(ctx, a.cfg.OutputPath, a.cfg.UploadFolderID)
	if err != nil {
		return fmt.Errorf("upload index: %w", err)
	}

	destination := a.cfg.UploadFolderID
	if destination == "" {
		destination = "My Drive"
	}
	a.logger.Info(ctx, "uploaded index", "destination", destination, "id", id)

	if a.cfg.ShareIndex && !shared {
		if err := a.client.Share(ctx, id); err != nil {
			return fmt.Errorf("share index: %w", err)
		}
		a.logger.Info(ctx, "shared index", "id", id)
	}
	return nil
}

func (a *App) publishS3(ctx context.Context) error {
	target := publish.S3Target{
		Bucket:       a.cfg.S3Bucket,
		Key:          a.cfg.S3Key,
		Region:       a.cfg.S3Region,
		BaseEndpoint: a.cfg.S3Endpoint,
		AccessKey:    a.cfg.S3AccessKey,
		SecretKey:    a.cfg.S3SecretKey,
	}
	if err := publishUpload(ctx, target, a.cfg.OutputPath); err != nil {
		return err
	}

	a.logger.Info(ctx, "published index", "bucket", a.cfg.S3Bucket)
	return nil
}
