package services

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/adampresley/flickralbums/pkg/models"
)

type fakeAlbum struct {
	id          string
	title       string
	description string
	photos      []string
}

/*
fakePhotoHost is an in-memory photo host. It answers the way Flickr does
for repeated mutations so reruns can be tested against real state.
*/
type fakePhotoHost struct {
	albums   []*fakeAlbum
	photos   map[string]bool
	uploads  map[string]string
	calls    []string
	failures map[string][]error
	nextID   int
}

func newFakePhotoHost() *fakePhotoHost {
	return &fakePhotoHost{
		photos:   map[string]bool{},
		uploads:  map[string]string{},
		failures: map[string][]error{},
	}
}

func (f *fakePhotoHost) addAlbum(id, title, description string, photos ...string) {
	for _, photo := range photos {
		f.photos[photo] = true
	}

	f.albums = append(f.albums, &fakeAlbum{id: id, title: title, description: description, photos: photos})
}

func (f *fakePhotoHost) addPhoto(id string) {
	f.photos[id] = true
}

func (f *fakePhotoHost) failNext(method string, errs ...error) {
	f.failures[method] = append(f.failures[method], errs...)
}

func (f *fakePhotoHost) call(method string, detail ...any) error {
	f.calls = append(f.calls, strings.TrimSpace(fmt.Sprintln(append([]any{method}, detail...)...)))

	if pending := f.failures[method]; len(pending) > 0 {
		f.failures[method] = pending[1:]
		return pending[0]
	}

	return nil
}

func (f *fakePhotoHost) album(id string) *fakeAlbum {
	for _, album := range f.albums {
		if album.id == id {
			return album
		}
	}

	return nil
}

func (f *fakePhotoHost) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakePhotoHost) titles() []string {
	result := []string{}

	for _, album := range f.albums {
		result = append(result, album.title)
	}

	return result
}

func (f *fakePhotoHost) ListAlbums(ctx context.Context, page, perPage int) (models.PageResult[models.Album], error) {
	if err := f.call("ListAlbums", page); err != nil {
		return models.PageResult[models.Album]{}, err
	}

	items := []models.Album{}

	for _, album := range pageOf(f.albums, page, perPage) {
		items = append(items, models.Album{
			ID:          album.id,
			Title:       album.title,
			Description: album.description,
			PhotoCount:  len(album.photos),
		})
	}

	return models.PageResult[models.Album]{Items: items, CurrentPage: page, TotalPages: totalPages(len(f.albums), perPage)}, nil
}

func (f *fakePhotoHost) ListAlbumPhotos(ctx context.Context, albumID string, page, perPage int) (models.PageResult[models.Photo], error) {
	if err := f.call("ListAlbumPhotos", albumID, page); err != nil {
		return models.PageResult[models.Photo]{}, err
	}

	album := f.album(albumID)

	if album == nil {
		return models.PageResult[models.Photo]{}, models.NewServiceError(models.KindOperation, "ListAlbumPhotos", fmt.Errorf("photoset not found"))
	}

	items := []models.Photo{}

	for _, id := range pageOf(album.photos, page, perPage) {
		items = append(items, models.Photo{ID: id, AlbumID: albumID})
	}

	return models.PageResult[models.Photo]{Items: items, CurrentPage: page, TotalPages: totalPages(len(album.photos), perPage)}, nil
}

func (f *fakePhotoHost) GetPhotoAlbum(ctx context.Context, photoID string) (string, error) {
	if err := f.call("GetPhotoAlbum", photoID); err != nil {
		return "", err
	}

	for _, album := range f.albums {
		if slices.Contains(album.photos, photoID) {
			return album.id, nil
		}
	}

	return "", nil
}

func (f *fakePhotoHost) CreateAlbum(ctx context.Context, title, description, primaryPhotoID string) (string, error) {
	if err := f.call("CreateAlbum", title, primaryPhotoID); err != nil {
		return "", err
	}

	if !f.photos[primaryPhotoID] {
		return "", &models.ServiceError{Kind: models.KindOperation, Op: "CreateAlbum", Code: 2, Err: fmt.Errorf("invalid primary photo id")}
	}

	id := f.id("a")
	f.albums = append(f.albums, &fakeAlbum{id: id, title: title, description: description, photos: []string{primaryPhotoID}})

	return id, nil
}

func (f *fakePhotoHost) DeleteAlbum(ctx context.Context, albumID string) error {
	if err := f.call("DeleteAlbum", albumID); err != nil {
		return err
	}

	for index, album := range f.albums {
		if album.id == albumID {
			f.albums = slices.Delete(f.albums, index, index+1)
			return nil
		}
	}

	return &models.ServiceError{Kind: models.KindAlreadySatisfied, Op: "DeleteAlbum", Code: 1, Err: fmt.Errorf("photoset not found")}
}

func (f *fakePhotoHost) EditAlbumMeta(ctx context.Context, albumID, title, description string) error {
	if err := f.call("EditAlbumMeta", albumID, title); err != nil {
		return err
	}

	album := f.album(albumID)

	if album == nil {
		return models.NewServiceError(models.KindOperation, "EditAlbumMeta", fmt.Errorf("photoset not found"))
	}

	album.title = title
	album.description = description
	return nil
}

func (f *fakePhotoHost) AddPhotoToAlbum(ctx context.Context, albumID, photoID string) error {
	if err := f.call("AddPhotoToAlbum", albumID, photoID); err != nil {
		return err
	}

	album := f.album(albumID)

	if album == nil || !f.photos[photoID] {
		return models.NewServiceError(models.KindOperation, "AddPhotoToAlbum", fmt.Errorf("photoset or photo not found"))
	}

	if slices.Contains(album.photos, photoID) {
		return &models.ServiceError{Kind: models.KindAlreadySatisfied, Op: "AddPhotoToAlbum", Code: 3, Err: fmt.Errorf("photo already in set")}
	}

	album.photos = append(album.photos, photoID)
	return nil
}

func (f *fakePhotoHost) DeletePhoto(ctx context.Context, photoID string) error {
	if err := f.call("DeletePhoto", photoID); err != nil {
		return err
	}

	if !f.photos[photoID] {
		return &models.ServiceError{Kind: models.KindAlreadySatisfied, Op: "DeletePhoto", Code: 1, Err: fmt.Errorf("photo not found")}
	}

	delete(f.photos, photoID)

	for _, album := range f.albums {
		album.photos = slices.DeleteFunc(album.photos, func(id string) bool { return id == photoID })
	}

	return nil
}

func (f *fakePhotoHost) UploadPhoto(ctx context.Context, body io.Reader, filename, title string) (string, error) {
	if err := f.call("UploadPhoto", filename); err != nil {
		return "", err
	}

	data, err := io.ReadAll(body)

	if err != nil {
		return "", err
	}

	id := f.id("p")
	f.photos[id] = true
	f.uploads[id] = string(data)

	return id, nil
}

func pageOf[T any](items []T, page, perPage int) []T {
	start := (page - 1) * perPage

	if start >= len(items) {
		return []T{}
	}

	return items[start:min(start+perPage, len(items))]
}

func totalPages(count, perPage int) int {
	return (count + perPage - 1) / perPage
}

type fakeImages struct {
	opened []string
}

func (f *fakeImages) Open(path string) (io.ReadCloser, error) {
	f.opened = append(f.opened, path)
	return io.NopCloser(strings.NewReader("contents of " + path)), nil
}
