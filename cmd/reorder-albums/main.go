package main

import (
	"strings"

	"github.com/adampresley/flickralbums/internal/app"
	"github.com/adampresley/flickralbums/pkg/models"
)

var (
	Version string = "development"
	appName string = "reorder-albums"
)

func main() {
	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	if config.Prefix == "" {
		app.Fatal("a title prefix is required", "flag", "-prefix")
	}

	a := app.MustNew(ctx, appName, config)

	albums, err := a.Snapshot.AlbumsWithPhotos(ctx, func(album models.Album) bool {
		return strings.HasPrefix(album.Title, config.Prefix)
	})

	if err != nil {
		app.Fatal("error reading albums", "error", err)
	}

	plan, backup := a.Planner.PlanReorderByRecreate(albums, config.Prefix)

	/*
	 * Nothing is deleted unless the backup is safely on disk
	 */
	if err = a.WriteBackup(ctx, backup); err != nil {
		app.Fatal("error writing backup, nothing was changed", "error", err)
	}

	a.Run(ctx, plan)
}
