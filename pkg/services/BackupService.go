package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// BackupMirror keeps an off-machine copy of backup documents.
type BackupMirror interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	LatestKey(ctx context.Context, prefix string) (string, error)
}

// LatestBackupKey asks ReadMirror for the newest mirrored backup.
const LatestBackupKey = "latest"

type BackupServicer interface {
	Write(ctx context.Context, path string, records []models.BackupRecord) error
	Read(path string) ([]models.BackupRecord, error)
	ReadMirror(ctx context.Context, key string) ([]models.BackupRecord, error)
}

type BackupServiceConfig struct {
	// Mirror is optional. When set every written backup is also stored there.
	Mirror       BackupMirror
	MirrorPrefix string
	Now          func() time.Time
}

type BackupService struct {
	mirror       BackupMirror
	mirrorPrefix string
	now          func() time.Time
}

func NewBackupService(config BackupServiceConfig) BackupService {
	now := config.Now

	if now == nil {
		now = time.Now
	}

	return BackupService{
		mirror:       config.Mirror,
		mirrorPrefix: config.MirrorPrefix,
		now:          now,
	}
}

/*
Write stores records as JSON at path. The document is written atomically,
so path either holds no backup or a complete one. A backup already at path
is first moved aside to a timestamped name and is never overwritten. A
mirror failure fails the write because a run must not start without its
backup.
*/
func (s BackupService) Write(ctx context.Context, path string, records []models.BackupRecord) error {
	var (
		err  error
		data []byte
	)

	if records == nil {
		records = []models.BackupRecord{}
	}

	if data, err = json.MarshalIndent(records, "", "  "); err != nil {
		return models.NewServiceError(models.KindSetup, path, fmt.Errorf("error encoding backup: %w", err))
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return models.NewServiceError(models.KindSetup, path, fmt.Errorf("error creating backup directory: %w", err))
	}

	if err = s.keepPrevious(path); err != nil {
		return err
	}

	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return models.NewServiceError(models.KindSetup, path, fmt.Errorf("error writing backup: %w", err))
	}

	slog.Info("backup written", "path", path, "albums", len(records))

	if s.mirror == nil {
		return nil
	}

	key := s.MirrorKey(path)

	if err = s.mirror.Put(ctx, key, data); err != nil {
		return models.NewServiceError(models.KindSetup, key, fmt.Errorf("error mirroring backup: %w", err))
	}

	slog.Info("backup mirrored", "key", key)
	return nil
}

/*
keepPrevious moves an existing backup at path to PreviousBackupPath. It
refuses to continue if that name is already taken.
*/
func (s BackupService) keepPrevious(path string) error {
	var (
		err  error
		info os.FileInfo
	)

	if info, err = os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return models.NewServiceError(models.KindSetup, path, fmt.Errorf("error checking for a previous backup: %w", err))
	}

	previous := PreviousBackupPath(path, info.ModTime())

	if _, err = os.Stat(previous); err == nil {
		return models.NewServiceError(models.KindSetup, path, fmt.Errorf("previous backup %s already exists, refusing to overwrite it", previous))
	}

	if err = os.Rename(path, previous); err != nil {
		return models.NewServiceError(models.KindSetup, path, fmt.Errorf("error keeping previous backup: %w", err))
	}

	slog.Info("previous backup kept", "path", previous)
	return nil
}

// PreviousBackupPath is where a backup last written at writtenAt is kept once a newer one replaces it.
func PreviousBackupPath(path string, writtenAt time.Time) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	return fmt.Sprintf("%s-%s%s", stem, writtenAt.UTC().Format("20060102T150405Z"), ext)
}

// MirrorKey is the timestamped key a backup written to path is mirrored under.
func (s BackupService) MirrorKey(path string) string {
	name := fmt.Sprintf("%s-%s", s.now().UTC().Format("20060102T150405Z"), filepath.Base(path))

	if s.mirrorPrefix == "" {
		return name
	}

	return strings.TrimSuffix(s.mirrorPrefix, "/") + "/" + name
}

// Read loads a backup document. Files ending in .yaml or .yml are read as YAML, anything else as JSON.
func (s BackupService) Read(path string) ([]models.BackupRecord, error) {
	var (
		err  error
		data []byte
	)

	if data, err = os.ReadFile(path); err != nil {
		return nil, models.NewServiceError(models.KindSetup, path, fmt.Errorf("error reading backup: %w", err))
	}

	return decodeBackup(path, data)
}

func (s BackupService) ReadMirror(ctx context.Context, key string) ([]models.BackupRecord, error) {
	var (
		err  error
		data []byte
	)

	if s.mirror == nil {
		return nil, models.NewServiceError(models.KindSetup, key, fmt.Errorf("no backup mirror configured"))
	}

	if key == LatestBackupKey {
		if key, err = s.mirror.LatestKey(ctx, s.mirrorPrefix); err != nil {
			return nil, models.NewServiceError(models.KindSetup, s.mirrorPrefix, fmt.Errorf("error finding latest backup: %w", err))
		}

		slog.Info("restoring latest mirrored backup", "key", key)
	}

	if data, err = s.mirror.Get(ctx, key); err != nil {
		return nil, models.NewServiceError(models.KindSetup, key, fmt.Errorf("error fetching mirrored backup: %w", err))
	}

	return decodeBackup(key, data)
}

func decodeBackup(name string, data []byte) ([]models.BackupRecord, error) {
	var err error

	records := []models.BackupRecord{}

	if isYAML(name) {
		err = yaml.Unmarshal(data, &records)
	} else {
		err = json.Unmarshal(data, &records)
	}

	if err != nil {
		return nil, models.NewServiceError(models.KindSetup, name, fmt.Errorf("error decoding backup: %w", err))
	}

	return records, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
