package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSnapshot(host *fakePhotoHost, pageSize int) SnapshotService {
	return NewSnapshotService(SnapshotServiceConfig{PhotoHost: host, PageSize: pageSize, Retry: fastRetry(3)})
}

func TestAlbumsWalksEveryPage(t *testing.T) {
	host := newFakePhotoHost()

	for i := 1; i <= 5; i++ {
		host.addAlbum(fmt.Sprintf("a%d", i), fmt.Sprintf("Album %d", i), "")
	}

	albums, err := newTestSnapshot(host, 2).Albums(context.Background())

	require.NoError(t, err)
	require.Len(t, albums, 5)
	assert.Equal(t, "a5", albums[4].ID)
	assert.Equal(t, []string{"ListAlbums 1", "ListAlbums 2", "ListAlbums 3"}, host.calls)
}

func TestAlbumsRetriesTransientPageFailures(t *testing.T) {
	host := newFakePhotoHost()
	host.addAlbum("a1", "One", "")
	host.failNext("ListAlbums", transient("getList"))

	albums, err := newTestSnapshot(host, 10).Albums(context.Background())

	require.NoError(t, err)
	assert.Len(t, albums, 1)
}

func TestAlbumsWithPhotosFillsSelectedAlbums(t *testing.T) {
	host := newFakePhotoHost()
	host.addAlbum("a1", "RT one", "", "p1", "p2", "p3")
	host.addAlbum("a2", "Other", "", "p4")

	albums, err := newTestSnapshot(host, 2).AlbumsWithPhotos(context.Background(), func(album models.Album) bool {
		return strings.HasPrefix(album.Title, "RT")
	})

	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, []string{"p1", "p2", "p3"}, albums[0].PhotoIDs)
	assert.NotContains(t, host.calls, "ListAlbumPhotos a2 1")
}

func TestAlbumPhotoIDsFailureFailsTheSnapshot(t *testing.T) {
	host := newFakePhotoHost()
	host.addAlbum("a1", "One", "", "p1")
	host.failNext("ListAlbumPhotos", models.NewServiceError(models.KindOperation, "getPhotos", fmt.Errorf("boom")))

	albums, err := newTestSnapshot(host, 10).AlbumsWithPhotos(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, albums)
}

func TestMemberships(t *testing.T) {
	host := newFakePhotoHost()
	host.addAlbum("a1", "One", "", "p1")
	host.addPhoto("p2")

	got, err := newTestSnapshot(host, 10).Memberships(context.Background(), []string{"p1", "p2", "p1"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"p1": "a1", "p2": ""}, got)
	assert.Equal(t, []string{"GetPhotoAlbum p1", "GetPhotoAlbum p2"}, host.calls)
}
