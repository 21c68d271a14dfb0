package main

import (
	"github.com/adampresley/flickralbums/internal/app"
)

var (
	Version string = "development"
	appName string = "find-duplicate-albums"
)

func main() {
	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	a := app.MustNew(ctx, appName, config)

	albums, err := a.Snapshot.Albums(ctx)

	if err != nil {
		app.Fatal("error listing albums", "error", err)
	}

	app.PrintDuplicates(a.Out, a.Planner.FindDuplicates(albums))
}
