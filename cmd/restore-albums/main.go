package main

import (
	"github.com/adampresley/flickralbums/internal/app"
	"github.com/adampresley/flickralbums/pkg/models"
)

var (
	Version string = "development"
	appName string = "restore-albums"
)

func main() {
	var (
		err     error
		records []models.BackupRecord
		albums  []models.Album
	)

	config, ctx, cancel := app.Start(appName, Version)
	defer cancel()

	if records, err = app.ReadLocalBackup(config); err != nil {
		app.Fatal("error reading backup", "error", err)
	}

	a := app.MustNew(ctx, appName, config)

	if config.BackupS3Key != "" {
		if records, err = a.Backups.ReadMirror(ctx, config.BackupS3Key); err != nil {
			app.Fatal("error reading mirrored backup", "key", config.BackupS3Key, "error", err)
		}
	}

	if albums, err = a.Snapshot.Albums(ctx); err != nil {
		app.Fatal("error listing albums", "error", err)
	}

	plan := a.Planner.PlanRestore(albums, records)
	a.Run(ctx, plan)
}
