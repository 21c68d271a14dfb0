package flickr

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/adampresley/flickralbums/pkg/models"
)

const (
	methodListAlbums     = "flickr.photosets.getList"
	methodListPhotos     = "flickr.photosets.getPhotos"
	methodCreateAlbum    = "flickr.photosets.create"
	methodDeleteAlbum    = "flickr.photosets.delete"
	methodEditAlbumMeta  = "flickr.photosets.editMeta"
	methodAddPhoto       = "flickr.photosets.addPhoto"
	methodDeletePhoto    = "flickr.photos.delete"
	methodGetAllContexts = "flickr.photos.getAllContexts"
	methodTestLogin      = "flickr.test.login"
)

func (s Session) ListAlbums(ctx context.Context, page, perPage int) (models.PageResult[models.Album], error) {
	var (
		err error
	)

	result := models.PageResult[models.Album]{}
	rsp := &photosetListResponse{}

	args := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}

	if s.userID != "" {
		args.Set("user_id", s.userID)
	}

	if err = s.get(ctx, methodListAlbums, args, rsp); err != nil {
		return result, err
	}

	result.CurrentPage = rsp.Photosets.Page
	result.TotalPages = rsp.Photosets.Pages
	result.Items = make([]models.Album, 0, len(rsp.Photosets.Items))

	for _, item := range rsp.Photosets.Items {
		result.Items = append(result.Items, models.Album{
			ID:             item.ID,
			Title:          item.Title,
			Description:    item.Description,
			PhotoCount:     item.Photos,
			PrimaryPhotoID: item.Primary,
		})
	}

	return result, nil
}

func (s Session) ListAlbumPhotos(ctx context.Context, albumID string, page, perPage int) (models.PageResult[models.Photo], error) {
	var (
		err error
	)

	result := models.PageResult[models.Photo]{}
	rsp := &photosetPhotosResponse{}

	args := url.Values{
		"photoset_id": {albumID},
		"page":        {strconv.Itoa(page)},
		"per_page":    {strconv.Itoa(perPage)},
	}

	if s.userID != "" {
		args.Set("user_id", s.userID)
	}

	if err = s.get(ctx, methodListPhotos, args, rsp); err != nil {
		return result, err
	}

	result.CurrentPage = rsp.Photoset.Page
	result.TotalPages = rsp.Photoset.Pages
	result.Items = make([]models.Photo, 0, len(rsp.Photoset.Photos))

	for _, item := range rsp.Photoset.Photos {
		result.Items = append(result.Items, models.Photo{
			ID:      item.ID,
			Title:   item.Title,
			AlbumID: albumID,
		})
	}

	return result, nil
}

func (s Session) CreateAlbum(ctx context.Context, title, description, primaryPhotoID string) (string, error) {
	var (
		err error
	)

	rsp := &createResponse{}

	args := url.Values{
		"title":            {title},
		"primary_photo_id": {primaryPhotoID},
	}

	if description != "" {
		args.Set("description", description)
	}

	if err = s.post(ctx, methodCreateAlbum, args, rsp); err != nil {
		return "", err
	}

	if rsp.Photoset.ID == "" {
		return "", models.NewServiceError(models.KindOperation, methodCreateAlbum, fmt.Errorf("response did not include a photoset id"))
	}

	return rsp.Photoset.ID, nil
}

func (s Session) DeleteAlbum(ctx context.Context, albumID string) error {
	return s.post(ctx, methodDeleteAlbum, url.Values{"photoset_id": {albumID}}, &basicResponse{})
}

/*
EditAlbumMeta sets title and description together. Flickr's editMeta
replaces the description with whatever is sent, so callers pass the current
description when they only mean to rename.
*/
func (s Session) EditAlbumMeta(ctx context.Context, albumID, title, description string) error {
	args := url.Values{
		"photoset_id": {albumID},
		"title":       {title},
		"description": {description},
	}

	return s.post(ctx, methodEditAlbumMeta, args, &basicResponse{})
}

func (s Session) AddPhotoToAlbum(ctx context.Context, albumID, photoID string) error {
	args := url.Values{
		"photoset_id": {albumID},
		"photo_id":    {photoID},
	}

	return s.post(ctx, methodAddPhoto, args, &basicResponse{})
}
