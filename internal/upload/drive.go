// Package upload pushes rendered briefs to Google Drive.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"trendbrief/internal/config"
	"trendbrief/internal/logger"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DriveUploader uploads documents into a configured Drive folder using a
// service account.
type DriveUploader struct {
	svc      *drive.Service
	folderID string
}

// NewDriveUploader builds the uploader from the drive configuration. The
// credentials file has to be a service-account JSON key with Drive scope.
func NewDriveUploader(ctx context.Context, cfg config.Drive) (*DriveUploader, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("drive credentials file is required: set GOOGLE_APPLICATION_CREDENTIALS or drive.credentials_file in config")
	}
	if cfg.FolderID == "" {
		return nil, fmt.Errorf("drive folder id is required: set DRIVE_FOLDER_ID or drive.folder_id in config")
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &DriveUploader{svc: svc, folderID: cfg.FolderID}, nil
}

// UploadBrief uploads the DOCX at path into the target folder, converting it
// to a native Google Doc so it opens directly in the browser. Returns the
// web view link of the created document.
func (u *DriveUploader) UploadBrief(ctx context.Context, path, name string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if name == "" {
		name = filepath.Base(path)
	}

	meta := &drive.File{
		Name:     name,
		Parents:  []string{u.folderID},
		MimeType: "application/vnd.google-apps.document",
	}

	created, err := u.svc.Files.Create(meta).
		Context(ctx).
		Media(f, googleapi.ContentType(docxMIME)).
		Fields("id", "webViewLink").
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload document to Drive: %w", err)
	}

	logger.Info("Brief uploaded to Drive", "file_id", created.Id, "link", created.WebViewLink)
	return created.WebViewLink, nil
}
