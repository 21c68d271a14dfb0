package main

import (
	"github.com/adampresley/flickralbums/internal/app"
	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/adampresley/flickralbums/pkg/services"
)

var (
	Version string = "development"
	appName string = "assign-photos"
)

func main() {
	var (
		err         error
		manifest    []models.ManifestEntry
		albums      []models.Album
		memberships map[string]string
	)

	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	if config.ManifestFile == "" {
		app.Fatal("a manifest file is required", "flag", "-manifest")
	}

	if manifest, err = services.NewManifestService().Load(config.ManifestFile); err != nil {
		app.Fatal("error loading manifest", "error", err)
	}

	a := app.MustNew(ctx, appName, config)

	if albums, err = a.Snapshot.Albums(ctx); err != nil {
		app.Fatal("error listing albums", "error", err)
	}

	photoIDs := []string{}

	for _, entry := range manifest {
		photoIDs = append(photoIDs, entry.Photos...)
	}

	if memberships, err = a.Snapshot.Memberships(ctx, photoIDs); err != nil {
		app.Fatal("error looking up photo albums", "error", err)
	}

	plan := a.Planner.PlanAssignFromManifest(albums, manifest, memberships)
	a.Run(ctx, plan)
}
