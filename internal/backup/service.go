package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/2beens/trainerdash/internal/store"
	"github.com/2beens/trainerdash/internal/strava"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"
	"github.com/2beens/trainerdash/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=backup_mocks_test.go -package=backup_test

const (
	DefaultFolderName = "trainerdash-backup"
	// activitiesFileChunkSize is the number of activities in one json file of the archive
	activitiesFileChunkSize = 500
)

var ErrNothingToBackup = errors.New("no stored activities to back up")

type activitiesSource interface {
	GetProfile(ctx context.Context, athleteID int64) (*store.ProfileDocument, error)
	ListActivities(ctx context.Context, athleteID int64) ([]strava.Activity, error)
}

type archiveStorage interface {
	FindOrCreateFolder(ctx context.Context, name string) (string, error)
	ListFileNames(ctx context.Context, folderID string) ([]string, error)
	Upload(ctx context.Context, folderID, name string, content io.Reader) (string, error)
	ShareWith(ctx context.Context, fileID, email string) error
}

type Service struct {
	source     activitiesSource
	storage    archiveStorage
	folderName string
	shareWith  string
	Now        func() time.Time
}

func NewService(source activitiesSource, storage archiveStorage, folderName, shareWith string) *Service {
	if folderName == "" {
		folderName = DefaultFolderName
	}
	return &Service{
		source:     source,
		storage:    storage,
		folderName: folderName,
		shareWith:  shareWith,
		Now:        time.Now,
	}
}

// DoBackup archives the stored profile and all stored activities of the athlete
// as a tar.gz of json files and uploads it. It returns the uploaded file name.
func (s *Service) DoBackup(ctx context.Context, athleteID int64) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.doBackup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	activities, err := s.source.ListActivities(ctx, athleteID)
	if err != nil {
		return "", fmt.Errorf("list activities: %w", err)
	}
	if len(activities) == 0 {
		return "", ErrNothingToBackup
	}

	profile, err := s.source.GetProfile(ctx, athleteID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("get profile: %w", err)
	}

	archive, err := buildArchive(profile, activities)
	if err != nil {
		return "", err
	}

	folderID, err := s.storage.FindOrCreateFolder(ctx, s.folderName)
	if err != nil {
		return "", err
	}

	existing, err := s.storage.ListFileNames(ctx, folderID)
	if err != nil {
		return "", err
	}

	fileName := nextArchiveName(athleteID, s.Now(), existing)
	log.Infof("backing up %d activities of athlete %d into %s", len(activities), athleteID, fileName)

	fileID, err := s.storage.Upload(ctx, folderID, fileName, archive)
	if err != nil {
		return "", err
	}

	if s.shareWith != "" {
		if err := s.storage.ShareWith(ctx, fileID, s.shareWith); err != nil {
			log.Errorf("%s: share backup with %s: %s", fileName, s.shareWith, err)
		}
	}

	log.Infof("backup %s saved: %s", fileName, fileID)
	return fileName, nil
}

func buildArchive(profile *store.ProfileDocument, activities []strava.Activity) (*bytes.Buffer, error) {
	tmpDir, err := os.MkdirTemp("", "trainerdash-backup-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Warnf("remove backup temp dir %s: %s", tmpDir, err)
		}
	}()

	if profile != nil {
		if err := writeJSONFile(filepath.Join(tmpDir, "profile.json"), profile); err != nil {
			return nil, err
		}
	}

	activitiesDir := filepath.Join(tmpDir, "activities")
	if err := os.Mkdir(activitiesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create activities dir: %w", err)
	}

	for i, chunk := 0, 1; i < len(activities); i, chunk = i+activitiesFileChunkSize, chunk+1 {
		end := min(i+activitiesFileChunkSize, len(activities))
		chunkPath := filepath.Join(activitiesDir, fmt.Sprintf("activities_%04d.json", chunk))
		if err := writeJSONFile(chunkPath, activities[i:end]); err != nil {
			return nil, err
		}
	}

	var archive bytes.Buffer
	if err := pkg.Compress(tmpDir, &archive); err != nil {
		return nil, fmt.Errorf("compress backup: %w", err)
	}

	return &archive, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// nextArchiveName returns a name for today's archive not present in existing.
func nextArchiveName(athleteID int64, now time.Time, existing []string) string {
	base := fmt.Sprintf("activities-%d-%s", athleteID, now.UTC().Format("2006-01-02"))
	name := base + ".tar.gz"
	for counter := 2; slices.Contains(existing, name); counter++ {
		name = fmt.Sprintf("%s_%d.tar.gz", base, counter)
	}
	return name
}
