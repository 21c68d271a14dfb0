package models

import (
	"fmt"
	"strings"
)

type OperationKind string

const (
	OperationCreateAlbum     OperationKind = "create-album"
	OperationDeleteAlbum     OperationKind = "delete-album"
	OperationRenameAlbum     OperationKind = "rename-album"
	OperationAddPhotoToAlbum OperationKind = "add-photo-to-album"
	OperationDeletePhoto     OperationKind = "delete-photo"
	OperationUploadPhoto     OperationKind = "upload-photo"
)

const placeholderPrefix = "@ref:"

/*
Operation is a single planned mutation. Which fields are meaningful depends
on Kind. Ref names the id produced by CreateAlbum and UploadPhoto so that
later operations in the same plan can point at it through Placeholder(Ref).
A DeleteAlbum with a Ref produces the id of the album it removed. Requires
names a Ref that must have been produced before the operation may run.
*/
type Operation struct {
	Kind           OperationKind
	AlbumID        string
	PhotoID        string
	Title          string
	PreviousTitle  string
	Description    string
	PrimaryPhotoID string
	LocalPath      string
	Ref            string
	Requires       string
}

func CreateAlbum(title, description, primaryPhotoID, ref string) Operation {
	return Operation{
		Kind:           OperationCreateAlbum,
		Title:          title,
		Description:    description,
		PrimaryPhotoID: primaryPhotoID,
		Ref:            ref,
	}
}

func DeleteAlbum(albumID, title string) Operation {
	return Operation{Kind: OperationDeleteAlbum, AlbumID: albumID, Title: title}
}

func RenameAlbum(albumID, previousTitle, newTitle, description string) Operation {
	return Operation{
		Kind:          OperationRenameAlbum,
		AlbumID:       albumID,
		PreviousTitle: previousTitle,
		Title:         newTitle,
		Description:   description,
	}
}

func AddPhotoToAlbum(albumID, photoID string) Operation {
	return Operation{Kind: OperationAddPhotoToAlbum, AlbumID: albumID, PhotoID: photoID}
}

func DeletePhoto(photoID string) Operation {
	return Operation{Kind: OperationDeletePhoto, PhotoID: photoID}
}

func UploadPhoto(localPath, title, ref string) Operation {
	return Operation{Kind: OperationUploadPhoto, LocalPath: localPath, Title: title, Ref: ref}
}

// Named returns a copy of o producing Ref.
func (o Operation) Named(ref string) Operation {
	o.Ref = ref
	return o
}

// RequiresRef returns a copy of o that only runs once ref has been produced.
func (o Operation) RequiresRef(ref string) Operation {
	o.Requires = ref
	return o
}

// Placeholder returns the value an operation field holds when it refers to an
// id produced earlier in the same plan.
func Placeholder(ref string) string {
	return placeholderPrefix + ref
}

// PlaceholderRef returns the referenced name and true when value is a placeholder.
func PlaceholderRef(value string) (string, bool) {
	if !strings.HasPrefix(value, placeholderPrefix) {
		return "", false
	}

	return strings.TrimPrefix(value, placeholderPrefix), true
}

func (o Operation) String() string {
	switch o.Kind {
	case OperationCreateAlbum:
		return fmt.Sprintf("create album '%s' (primary photo %s)", o.Title, o.PrimaryPhotoID)
	case OperationDeleteAlbum:
		return fmt.Sprintf("delete album '%s' (%s)", o.Title, o.AlbumID)
	case OperationRenameAlbum:
		return fmt.Sprintf("rename album %s '%s' -> '%s'", o.AlbumID, o.PreviousTitle, o.Title)
	case OperationAddPhotoToAlbum:
		return fmt.Sprintf("add photo %s to album %s", o.PhotoID, o.AlbumID)
	case OperationDeletePhoto:
		return fmt.Sprintf("delete photo %s", o.PhotoID)
	case OperationUploadPhoto:
		return fmt.Sprintf("upload %s as '%s'", o.LocalPath, o.Title)
	}

	return fmt.Sprintf("unknown operation %q", string(o.Kind))
}
