package models

/*
LocalDirectory is a candidate album on disk. UploadPath is the source
subfolder when one exists, otherwise Path itself. Files holds base names of
the image files in UploadPath, sorted.
*/
type LocalDirectory struct {
	Name            string
	Path            string
	UploadPath      string
	HasSourceFolder bool
	Files           []string
}
