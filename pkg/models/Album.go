package models

/*
Album is a photoset on the photo host. ID is assigned by the service and
never changes. Titles are not unique.
*/
type Album struct {
	ID             string
	Title          string
	Description    string
	PhotoCount     int
	PrimaryPhotoID string
	PhotoIDs       []string
}

// HasPhotos reports whether the photo membership was captured and is non-empty.
func (a Album) HasPhotos() bool {
	return len(a.PhotoIDs) > 0
}
