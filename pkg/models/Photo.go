package models

type Photo struct {
	ID       string
	Title    string
	Filename string
	AlbumID  string
}
