package services

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/alitto/pond/v2"
)

const (
	DefaultSourceFolderName = "Develops"
	DefaultScanWorkers      = 4
)

var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png"}

type DirectoryScanServicer interface {
	ScanRange(ctx context.Context, root, start, end string) ([]models.LocalDirectory, error)
	ScanDirectory(path string) (models.LocalDirectory, error)
}

type DirectoryScanServiceConfig struct {
	ImageExtensions  []string
	MaxWorkers       int
	SourceFolderName string
}

type DirectoryScanService struct {
	imageExtensions  []string
	maxWorkers       int
	sourceFolderName string
}

func NewDirectoryScanService(config DirectoryScanServiceConfig) DirectoryScanService {
	result := DirectoryScanService{
		imageExtensions:  config.ImageExtensions,
		maxWorkers:       config.MaxWorkers,
		sourceFolderName: config.SourceFolderName,
	}

	if len(result.imageExtensions) == 0 {
		result.imageExtensions = DefaultImageExtensions
	}

	if result.maxWorkers < 1 {
		result.maxWorkers = DefaultScanWorkers
	}

	if result.sourceFolderName == "" {
		result.sourceFolderName = DefaultSourceFolderName
	}

	return result
}

// IsImageFile reports whether name carries one of the given extensions, ignoring case.
func IsImageFile(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != "" && slices.IsInSlice(ext, extensions)
}

/*
ScanRange walks root looking for directories whose base name falls in
[start, end]. Each candidate's source subfolder, or the candidate itself
when it has none, is listed in a worker pool. Source subfolders themselves
are never candidates.
*/
func (s DirectoryScanService) ScanRange(ctx context.Context, root, start, end string) ([]models.LocalDirectory, error) {
	var (
		err        error
		candidates []string
		mutex      sync.Mutex
		firstErr   error
	)

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !entry.IsDir() || path == root {
			return nil
		}

		if entry.Name() == s.sourceFolderName {
			return filepath.SkipDir
		}

		if entry.Name() >= start && entry.Name() <= end {
			candidates = append(candidates, path)
		}

		return nil
	})

	if err != nil {
		return nil, models.NewServiceError(models.KindSetup, root, fmt.Errorf("error walking directory: %w", err))
	}

	result := make([]models.LocalDirectory, 0, len(candidates))
	pool := pond.NewPool(s.maxWorkers, pond.WithContext(ctx))

	for _, candidate := range candidates {
		pool.Submit(func() {
			dir, scanErr := s.scanCandidate(candidate)

			mutex.Lock()
			defer mutex.Unlock()

			if scanErr != nil {
				if firstErr == nil {
					firstErr = scanErr
				}

				return
			}

			result = append(result, dir)
		})
	}

	_ = pool.Stop().Wait()

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("error scanning '%s': %w", root, err)
	}

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(result, func(i, j int) bool {
		return cmp.Or(cmp.Compare(result[i].Name, result[j].Name), cmp.Compare(result[i].Path, result[j].Path)) < 0
	})

	slog.Debug("scanned directories", "root", root, "start", start, "end", end, "found", len(result))
	return result, nil
}

// ScanDirectory lists the image files directly inside path.
func (s DirectoryScanService) ScanDirectory(path string) (models.LocalDirectory, error) {
	var (
		err   error
		info  os.FileInfo
		files []string
	)

	path = filepath.Clean(path)

	if info, err = os.Stat(path); err != nil {
		return models.LocalDirectory{}, models.NewServiceError(models.KindSetup, path, err)
	}

	if !info.IsDir() {
		return models.LocalDirectory{}, models.NewServiceError(models.KindSetup, path, fmt.Errorf("not a directory"))
	}

	if files, err = s.listImages(path); err != nil {
		return models.LocalDirectory{}, err
	}

	return models.LocalDirectory{
		Name:       filepath.Base(path),
		Path:       path,
		UploadPath: path,
		Files:      files,
	}, nil
}

func (s DirectoryScanService) scanCandidate(path string) (models.LocalDirectory, error) {
	var (
		err   error
		info  os.FileInfo
		files []string
	)

	dir := models.LocalDirectory{
		Name:       filepath.Base(path),
		Path:       path,
		UploadPath: path,
		Files:      []string{},
	}

	sourcePath := filepath.Join(path, s.sourceFolderName)

	if info, err = os.Stat(sourcePath); err == nil && info.IsDir() {
		dir.UploadPath = sourcePath
		dir.HasSourceFolder = true
	}

	if files, err = s.listImages(dir.UploadPath); err != nil {
		return dir, err
	}

	dir.Files = files
	return dir, nil
}

func (s DirectoryScanService) listImages(path string) ([]string, error) {
	var (
		err     error
		entries []os.DirEntry
	)

	if entries, err = os.ReadDir(path); err != nil {
		return nil, models.NewServiceError(models.KindSetup, path, fmt.Errorf("error reading directory: %w", err))
	}

	result := []string{}

	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name(), s.imageExtensions) {
			continue
		}

		result = append(result, entry.Name())
	}

	sort.Strings(result)
	return result, nil
}
