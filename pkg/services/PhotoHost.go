package services

import (
	"context"
	"io"

	"github.com/adampresley/flickralbums/pkg/models"
)

/*
PhotoHostServicer is the remote photo service. flickr.Session satisfies it.
Every method returns *models.ServiceError values classified by kind.
*/
type PhotoHostServicer interface {
	ListAlbums(ctx context.Context, page, perPage int) (models.PageResult[models.Album], error)
	ListAlbumPhotos(ctx context.Context, albumID string, page, perPage int) (models.PageResult[models.Photo], error)
	GetPhotoAlbum(ctx context.Context, photoID string) (string, error)
	CreateAlbum(ctx context.Context, title, description, primaryPhotoID string) (string, error)
	DeleteAlbum(ctx context.Context, albumID string) error
	EditAlbumMeta(ctx context.Context, albumID, title, description string) error
	AddPhotoToAlbum(ctx context.Context, albumID, photoID string) error
	DeletePhoto(ctx context.Context, photoID string) error
	UploadPhoto(ctx context.Context, body io.Reader, filename, title string) (string, error)
}
