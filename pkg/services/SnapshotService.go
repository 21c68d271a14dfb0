package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adampresley/flickralbums/pkg/models"
)

type SnapshotServicer interface {
	Albums(ctx context.Context) ([]models.Album, error)
	AlbumPhotoIDs(ctx context.Context, albumID string) ([]string, error)
	AlbumsWithPhotos(ctx context.Context, keep func(models.Album) bool) ([]models.Album, error)
	Memberships(ctx context.Context, photoIDs []string) (map[string]string, error)
}

type SnapshotServiceConfig struct {
	PhotoHost PhotoHostServicer
	PageSize  int
	Retry     RetryPolicy
	Logger    *slog.Logger
}

/*
SnapshotService reads remote state. Every listing walks all pages before
returning, so plans are never derived from a partial view.
*/
type SnapshotService struct {
	photoHost PhotoHostServicer
	pageSize  int
	retry     RetryPolicy
	logger    *slog.Logger
}

func NewSnapshotService(config SnapshotServiceConfig) SnapshotService {
	pageSize := config.PageSize

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	logger := config.Logger

	if logger == nil {
		logger = slog.Default()
	}

	return SnapshotService{
		photoHost: config.PhotoHost,
		pageSize:  pageSize,
		retry:     config.Retry,
		logger:    logger,
	}
}

func (s SnapshotService) Albums(ctx context.Context) ([]models.Album, error) {
	var (
		err    error
		albums []models.Album
	)

	albums, err = ListAll(ctx, func(ctx context.Context, page int) (models.PageResult[models.Album], error) {
		var result models.PageResult[models.Album]

		_, retryErr := s.retry.Do(ctx, "list albums", func() error {
			var callErr error
			result, callErr = s.photoHost.ListAlbums(ctx, page, s.pageSize)
			return callErr
		})

		return result, retryErr
	})

	if err != nil {
		return nil, fmt.Errorf("error listing albums: %w", err)
	}

	s.logger.Debug("listed albums", "count", len(albums))
	return albums, nil
}

func (s SnapshotService) AlbumPhotoIDs(ctx context.Context, albumID string) ([]string, error) {
	var (
		err    error
		photos []models.Photo
	)

	photos, err = ListAll(ctx, func(ctx context.Context, page int) (models.PageResult[models.Photo], error) {
		var result models.PageResult[models.Photo]

		_, retryErr := s.retry.Do(ctx, "list album photos", func() error {
			var callErr error
			result, callErr = s.photoHost.ListAlbumPhotos(ctx, albumID, page, s.pageSize)
			return callErr
		})

		return result, retryErr
	})

	if err != nil {
		return nil, fmt.Errorf("error listing photos of album %s: %w", albumID, err)
	}

	result := make([]string, 0, len(photos))

	for _, photo := range photos {
		result = append(result, photo.ID)
	}

	return result, nil
}

/*
AlbumsWithPhotos lists every album and fills PhotoIDs for the ones keep
selects. Albums keep rejects are not returned. A nil keep selects all.
*/
func (s SnapshotService) AlbumsWithPhotos(ctx context.Context, keep func(models.Album) bool) ([]models.Album, error) {
	var (
		err    error
		albums []models.Album
	)

	if albums, err = s.Albums(ctx); err != nil {
		return nil, err
	}

	result := []models.Album{}

	for _, album := range albums {
		if keep != nil && !keep(album) {
			continue
		}

		if album.PhotoIDs, err = s.AlbumPhotoIDs(ctx, album.ID); err != nil {
			return nil, err
		}

		result = append(result, album)
	}

	return result, nil
}

/*
Memberships looks up the album holding each photo, "" meaning none. Any
failed lookup aborts the snapshot rather than guessing.
*/
func (s SnapshotService) Memberships(ctx context.Context, photoIDs []string) (map[string]string, error) {
	result := map[string]string{}

	for _, photoID := range photoIDs {
		if _, ok := result[photoID]; ok {
			continue
		}

		var albumID string

		_, err := s.retry.Do(ctx, "get photo album", func() error {
			var callErr error
			albumID, callErr = s.photoHost.GetPhotoAlbum(ctx, photoID)
			return callErr
		})

		if err != nil {
			return nil, fmt.Errorf("error looking up album of photo %s: %w", photoID, err)
		}

		result[photoID] = albumID
	}

	return result, nil
}
