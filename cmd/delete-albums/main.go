package main

import (
	"strings"

	"github.com/adampresley/flickralbums/internal/app"
	"github.com/adampresley/flickralbums/pkg/models"
)

var (
	Version string = "development"
	appName string = "delete-albums"
)

func main() {
	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	if config.Prefix == "" {
		app.Fatal("a title prefix is required", "flag", "-prefix")
	}

	a := app.MustNew(ctx, appName, config)

	/*
	 * Photo ids are only fetched for matching albums
	 */
	albums, err := a.Snapshot.AlbumsWithPhotos(ctx, func(album models.Album) bool {
		return strings.HasPrefix(album.Title, config.Prefix)
	})

	if err != nil {
		app.Fatal("error reading albums", "error", err)
	}

	plan := a.Planner.PlanDeleteByPrefix(albums, config.Prefix)
	a.Run(ctx, plan)
}
