package services

import (
	"context"
	"fmt"

	"github.com/adampresley/flickralbums/pkg/models"
)

// DefaultPageSize is the largest page the photo host serves.
const DefaultPageSize = 500

type PageFetcher[T any] func(ctx context.Context, page int) (models.PageResult[T], error)

/*
ListAll fetches every page starting at page 1 and returns the items in page
order. It stops once the current page reaches the reported total, so an
empty listing (zero total pages) ends after the first call. A failure on any
page fails the whole listing and nothing fetched so far is returned.
*/
func ListAll[T any](ctx context.Context, fetchPage PageFetcher[T]) ([]T, error) {
	var (
		err    error
		result models.PageResult[T]
	)

	items := []T{}

	for page := 1; ; page++ {
		if result, err = fetchPage(ctx, page); err != nil {
			return nil, fmt.Errorf("error fetching page %d: %w", page, err)
		}

		items = append(items, result.Items...)

		current := max(page, result.CurrentPage)

		if current >= result.TotalPages {
			break
		}

		page = current
	}

	return items, nil
}
