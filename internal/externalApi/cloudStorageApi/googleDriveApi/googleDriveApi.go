package googleDriveApi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const downloadLinkTemplate = "https://drive.google.com/file/d/%s/view"

// GoogleDriveApi stores leads reports. Uploaded files are readable by
// anyone with the link; files older than the configured TTL are removed.
type GoogleDriveApi struct {
	srv      *drive.Service
	folderID string
	fileTTL  time.Duration
}

func New(ctx context.Context, cfg *config.Config) *GoogleDriveApi {
	srv, err := drive.NewService(ctx, option.WithCredentialsFile(cfg.GoogleDrive.CredentialsFile))
	if err != nil {
		slog.Error("failed on drive.NewService", slog.String("err", err.Error()))
		panic(err)
	}
	return &GoogleDriveApi{srv: srv, folderID: cfg.GoogleDrive.FolderID, fileTTL: cfg.GoogleDrive.FileTTL}
}

func (a *GoogleDriveApi) UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "GoogleDriveApi.UploadFile"

	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	slog.Debug("UploadFile start", slog.String("rqID", rqID), slog.String("op", op), slog.String("filename", filename), slog.String("mime", mimeType))

	fileMeta := &drive.File{
		Name:     filename,
		MimeType: mimeType,
	}
	if a.folderID != "" {
		fileMeta.Parents = []string{a.folderID}
	}

	uploadedFile, err := a.srv.Files.
		Create(fileMeta).
		Media(reader). // чанки по 16МБ, ретраи сетевых ошибок внутри клиента
		Context(ctx).
		Do()
	if err != nil {
		slog.Error("failed on uploading file to google drive", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	perm := &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}

	_, err = a.srv.Permissions.Create(uploadedFile.Id, perm).Context(ctx).Do()
	if err != nil {
		slog.Error("failed on creating permission to uploaded file in google drive", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return "", err
	}

	slog.Debug("UploadFile completed", slog.String("rqID", rqID), slog.String("op", op), slog.String("fileID", uploadedFile.Id))

	return fmt.Sprintf(downloadLinkTemplate, uploadedFile.Id), nil
}

// DeleteOldFiles removes reports created before now minus the file TTL.
func (a *GoogleDriveApi) DeleteOldFiles(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "GoogleDriveApi.DeleteOldFiles"

	threshold := time.Now().Add(-a.fileTTL)
	query := fmt.Sprintf("createdTime < '%s' and trashed = false", threshold.UTC().Format(time.RFC3339))
	if a.folderID != "" {
		query += fmt.Sprintf(" and '%s' in parents", a.folderID)
	}

	slog.Debug("DeleteOldFiles start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query))

	deletedFiles := 0
	err := a.srv.Files.List().
		Q(query).
		Fields("nextPageToken, files(id, createdTime)").
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				if err := a.srv.Files.Delete(f.Id).Context(ctx).Do(); err != nil {
					slog.Error(
						"failed delete file",
						slog.String("rqID", rqID),
						slog.String("op", op),
						slog.String("err", err.Error()),
						slog.String("fileID", f.Id),
						slog.String("createdTime", f.CreatedTime),
					)
					continue
				}
				deletedFiles++
			}
			return nil
		})
	if err != nil {
		slog.Error("failed on listing files", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	slog.Info("delete old files done", slog.String("rqID", rqID), slog.Int("deletedFiles", deletedFiles))

	return nil
}
