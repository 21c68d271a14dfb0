package flickr

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/adampresley/flickralbums/pkg/models"
)

func (s Session) DeletePhoto(ctx context.Context, photoID string) error {
	return s.post(ctx, methodDeletePhoto, url.Values{"photo_id": {photoID}}, &basicResponse{})
}

// GetPhotoAlbum returns the id of the first album containing the photo, or "" when it is in none.
func (s Session) GetPhotoAlbum(ctx context.Context, photoID string) (string, error) {
	var (
		err error
	)

	rsp := &contextsResponse{}

	if err = s.get(ctx, methodGetAllContexts, url.Values{"photo_id": {photoID}}, rsp); err != nil {
		return "", err
	}

	if len(rsp.Sets) == 0 {
		return "", nil
	}

	return rsp.Sets[0].ID, nil
}

// UploadPhoto sends the bytes as a multipart upload and returns the new photo id.
func (s Session) UploadPhoto(ctx context.Context, body io.Reader, filename, title string) (string, error) {
	var (
		err error
	)

	rsp := &uploadResponse{}

	if err = s.upload(ctx, body, filename, title, rsp); err != nil {
		return "", err
	}

	if rsp.PhotoID == "" {
		return "", models.NewServiceError(models.KindOperation, "upload", fmt.Errorf("upload of '%s' returned no photo id", filename))
	}

	return rsp.PhotoID, nil
}

// TestLogin returns the user id and username the session is authenticated as.
func (s Session) TestLogin(ctx context.Context) (string, string, error) {
	var (
		err error
	)

	rsp := &loginResponse{}

	if err = s.get(ctx, methodTestLogin, nil, rsp); err != nil {
		return "", "", err
	}

	return rsp.User.ID, rsp.User.Username, nil
}
