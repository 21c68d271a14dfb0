package main

import (
	"fmt"

	"github.com/adampresley/flickralbums/internal/app"
	"github.com/adampresley/flickralbums/pkg/models"
)

var (
	Version string = "development"
	appName string = "upload-albums"
)

func main() {
	var (
		err    error
		dirs   []models.LocalDirectory
		albums []models.Album
	)

	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	if config.StartAlbum == "" || config.EndAlbum == "" {
		app.Fatal("a start and end album name are required", "flags", "-start -end")
	}

	if dirs, err = app.NewScanner(config).ScanRange(ctx, config.RootFolder, config.StartAlbum, config.EndAlbum); err != nil {
		app.Fatal("error scanning photo folders", "root", config.RootFolder, "error", err)
	}

	if len(dirs) == 0 {
		fmt.Println("No albums found in the specified range.")
		return
	}

	a := app.MustNew(ctx, appName, config)

	if albums, err = a.Snapshot.Albums(ctx); err != nil {
		app.Fatal("error listing albums", "error", err)
	}

	plan := a.Planner.PlanBulkUpload(albums, dirs, config.StartAlbum, config.EndAlbum)
	a.Run(ctx, plan)

	missing := []string{}

	for _, dir := range dirs {
		if !dir.HasSourceFolder {
			missing = append(missing, dir.Path)
		}
	}

	fmt.Fprintf(a.Out, "\nChecking for directories without '%s' subfolder:\n", config.SourceFolderName)

	if len(missing) == 0 {
		fmt.Fprintln(a.Out, "All directories had the subfolder.")
		return
	}

	for _, path := range missing {
		fmt.Fprintf(a.Out, " - %s\n", path)
	}
}
