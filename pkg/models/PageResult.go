package models

/*
PageResult is one page of a listing endpoint. CurrentPage is 1-based.
A TotalPages of zero means the listing is empty.
*/
type PageResult[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
}
