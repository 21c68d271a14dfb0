package main

import (
	"github.com/adampresley/flickralbums/internal/app"
	"github.com/adampresley/flickralbums/pkg/models"
)

var (
	Version string = "development"
	appName string = "upload-single-album"
)

func main() {
	var (
		err    error
		dir    models.LocalDirectory
		albums []models.Album
	)

	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	if config.Directory == "" {
		app.Fatal("a directory is required", "flag", "-dir")
	}

	if dir, err = app.NewScanner(config).ScanDirectory(config.Directory); err != nil {
		app.Fatal("error reading directory", "directory", config.Directory, "error", err)
	}

	a := app.MustNew(ctx, appName, config)

	if albums, err = a.Snapshot.Albums(ctx); err != nil {
		app.Fatal("error listing albums", "error", err)
	}

	plan := a.Planner.PlanUploadDirectory(albums, dir, config.AlbumTitle)
	a.Run(ctx, plan)
}
