package main

import (
	"fmt"

	"github.com/adampresley/flickralbums/internal/app"
)

var (
	Version string = "development"
	appName string = "find-offending-albums"
)

func main() {
	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	a := app.MustNew(ctx, appName, config)

	albums, err := a.Snapshot.Albums(ctx)

	if err != nil {
		app.Fatal("error listing albums", "error", err)
	}

	offending := a.Planner.FindUndatedAlbums(albums)

	if len(offending) == 0 {
		fmt.Fprintln(a.Out, "All albums start with an 8-digit date string.")
		return
	}

	app.PrintTitles(a.Out, "Albums not starting with 8-digit date string:", offending)
}
