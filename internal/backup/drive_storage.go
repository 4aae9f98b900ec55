package backup

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveStorage keeps backup archives in a google drive folder.
type DriveStorage struct {
	service *drive.Service
}

func NewDriveStorage(ctx context.Context, credentialsJson []byte) (*DriveStorage, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	return &DriveStorage{
		service: driveService,
	}, nil
}

func (s *DriveStorage) FindOrCreateFolder(ctx context.Context, name string) (string, error) {
	folderQuery := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, name)
	folders, err := s.service.
		Files.List().
		Q(folderQuery).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("list folders: %w", err)
	}

	switch len(folders.Files) {
	case 0:
		log.Infof("backups folder %s not found, creating ...", name)
	case 1:
		return folders.Files[0].Id, nil
	default:
		log.Warnf("attention: found %d backups folders named %s, will take the first one: %s", len(folders.Files), name, folders.Files[0].Id)
		return folders.Files[0].Id, nil
	}

	created, err := s.service.
		Files.Create(&drive.File{
			Name:     name,
			MimeType: folderMimeType,
		}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create folder %s: %w", name, err)
	}

	log.Infof("new backups folder created: %s", created.Id)
	return created.Id, nil
}

func (s *DriveStorage) ListFileNames(ctx context.Context, folderID string) ([]string, error) {
	filesQuery := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", folderID, folderMimeType)
	files, err := s.service.
		Files.List().
		Q(filesQuery).
		Fields("files(id, name, createdTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list backup files: %w", err)
	}

	names := make([]string, 0, len(files.Files))
	for _, f := range files.Files {
		names = append(names, f.Name)
	}
	return names, nil
}

func (s *DriveStorage) Upload(ctx context.Context, folderID, name string, content io.Reader) (string, error) {
	fileMeta := &drive.File{
		Name: name,
		// https://developers.google.com/drive/api/v3/mime-types
		MimeType: "application/gzip",
		Parents:  []string{folderID},
	}

	created, err := s.service.
		Files.Create(fileMeta).
		Fields("id, parents").
		Media(content).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%s: create backup file: %w", name, err)
	}

	return created.Id, nil
}

// ShareWith grants read access on the file to the given account.
func (s *DriveStorage) ShareWith(ctx context.Context, fileID, email string) error {
	_, err := s.service.Permissions.
		Create(fileID, &drive.Permission{
			EmailAddress: email,
			Type:         "user",
			Role:         "reader",
		}).
		Context(ctx).
		Do()
	return err
}
