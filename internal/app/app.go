package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/flickralbums/internal/configuration"
	"github.com/adampresley/flickralbums/pkg/flickr"
	"github.com/adampresley/flickralbums/pkg/models"
	"github.com/adampresley/flickralbums/pkg/services"
)

/*
App holds the services one command needs. Journal and Backups.Mirror are
optional and stay unset when not configured.
*/
type App struct {
	Name    string
	Logger  *slog.Logger
	Config  configuration.Config
	Host    services.PhotoHostServicer
	Retry   services.RetryPolicy
	Planner services.PlannerService
	Scanner services.DirectoryScanService
	Backups services.BackupService
	Journal services.JournalServicer

	Snapshot services.SnapshotService

	In  io.Reader
	Out io.Writer
}

/*
Start loads configuration, sets up logging and returns a context that is
cancelled on interrupt. Every command begins here.
*/
func Start(appName, version string) (configuration.Config, context.Context, context.CancelFunc) {
	config := configuration.LoadConfig()
	SetupLogger(config.LogLevel, appName, version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", version),
		slog.String("loglevel", config.LogLevel),
		slog.Bool("dryRun", config.DryRun),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	return config, ctx, cancel
}

// New wires the Flickr session and local services. Only local state is touched here.
func New(ctx context.Context, appName string, config configuration.Config) (App, error) {
	var (
		err     error
		session flickr.Session
		mirror  services.BackupMirror
		journal services.JournalServicer
	)

	session, err = flickr.NewSession(flickr.SessionConfig{
		APIKey:           config.FlickrApiKey,
		APISecret:        config.FlickrApiSecret,
		OAuthToken:       config.FlickrOAuthToken,
		OAuthTokenSecret: config.FlickrOAuthTokenSecret,
		UserID:           config.FlickrUserId,
		BaseURL:          config.FlickrBaseUrl,
	})

	if err != nil {
		return App{}, err
	}

	if mirror, err = newBackupMirror(config); err != nil {
		return App{}, err
	}

	if journal, err = newJournal(ctx, config); err != nil {
		return App{}, err
	}

	retry := services.RetryPolicy{
		MaxAttempts: config.MaxAttempts,
		BaseDelay:   config.RetryDelay(),
		MaxDelay:    services.DefaultMaxDelay,
	}

	logger := slog.Default().With("app", appName)

	return App{
		Name:   appName,
		Logger: logger,
		Config: config,
		Host:   session,
		Retry:  retry,
		Planner: services.NewPlannerService(services.PlannerServiceConfig{
			RenameRootMarker: config.RenameRootMarker,
		}),
		Scanner: NewScanner(config),
		Backups: services.NewBackupService(services.BackupServiceConfig{
			Mirror:       mirror,
			MirrorPrefix: appName,
		}),
		Journal: journal,
		Snapshot: services.NewSnapshotService(services.SnapshotServiceConfig{
			PhotoHost: session,
			PageSize:  config.PageSize,
			Retry:     retry,
			Logger:    logger,
		}),
		In:  os.Stdin,
		Out: os.Stdout,
	}, nil
}

// NewScanner builds the directory scanner. Commands use it to read local folders before any remote setup.
func NewScanner(config configuration.Config) services.DirectoryScanService {
	return services.NewDirectoryScanService(services.DirectoryScanServiceConfig{
		MaxWorkers:       config.ScanWorkers,
		SourceFolderName: config.SourceFolderName,
	})
}

/*
ReadLocalBackup reads the configured backup file. It returns nothing when
a mirrored backup key is configured, since that one can only be read once
the mirror is set up.
*/
func ReadLocalBackup(config configuration.Config) ([]models.BackupRecord, error) {
	if config.BackupS3Key != "" {
		return nil, nil
	}

	return services.NewBackupService(services.BackupServiceConfig{}).Read(config.BackupFile)
}

// MustNew is New for command mains: any setup failure ends the process.
func MustNew(ctx context.Context, appName string, config configuration.Config) App {
	a, err := New(ctx, appName, config)

	if err != nil {
		Fatal("setup failed", "error", err)
	}

	if session, ok := a.Host.(flickr.Session); ok {
		id, username, loginErr := session.TestLogin(ctx)

		if loginErr != nil {
			Fatal("could not authenticate with Flickr", "error", loginErr)
		}

		slog.Info("authenticated", "userID", id, "username", username)
	}

	return a
}

/*
Run shows the plan, asks for confirmation once (not in dry-run), executes
it and prints the report. It returns false when the operator declined or
there was nothing to do.
*/
func (a App) Run(ctx context.Context, plan models.Plan) (models.ExecutionReport, bool) {
	var (
		err   error
		runID string
	)

	PrintPlan(a.Out, plan)

	if plan.IsEmpty() {
		fmt.Fprintln(a.Out, "Nothing to do.")
		return models.ExecutionReport{DryRun: a.Config.DryRun}, false
	}

	if !a.Config.DryRun && !Confirm(a.In, a.Out, "Proceed?", a.Config.AssumeYes) {
		fmt.Fprintln(a.Out, "Canceled by user.")
		return models.ExecutionReport{}, false
	}

	observer := func(models.OperationResult) {}

	if a.Journal != nil {
		if runID, err = a.Journal.StartRun(ctx, a.Name, plan.Intent, a.Config.DryRun); err != nil {
			slog.Warn("journal unavailable, continuing without it", "error", err)
		} else {
			observer = func(result models.OperationResult) {
				if recordErr := a.Journal.RecordResult(ctx, runID, result); recordErr != nil {
					slog.Warn("could not journal operation", "index", result.Index, "error", recordErr)
				}
			}
		}
	}

	executor := services.NewExecutorService(services.ExecutorServiceConfig{
		PhotoHost: a.Host,
		Images:    services.NewImageService(services.ImageServiceConfig{MaxEdge: uint(max(a.Config.MaxUploadEdge, 0))}),
		Retry:     a.Retry,
		DryRun:    a.Config.DryRun,
		Logger:    a.Logger,
		Observer:  observer,
	})

	report := executor.Execute(ctx, plan)

	if runID != "" {
		if err = a.Journal.FinishRun(context.WithoutCancel(ctx), runID, report); err != nil {
			slog.Warn("could not finish journal run", "runID", runID, "error", err)
		}
	}

	PrintReport(a.Out, report)
	return report, true
}

/*
WriteBackup stores the reorder backup at the configured backup file. A dry
run writes nothing so an earlier backup stays where restore-albums expects
it.
*/
func (a App) WriteBackup(ctx context.Context, records []models.BackupRecord) error {
	if a.Config.DryRun {
		fmt.Fprintf(a.Out, "Dry run: backup of %d albums would be written to %s\n", len(records), a.Config.BackupFile)
		return nil
	}

	return a.Backups.Write(ctx, a.Config.BackupFile, records)
}

func newBackupMirror(config configuration.Config) (services.BackupMirror, error) {
	var (
		err      error
		s3Client s3.S3Client
	)

	if config.BackupBucket == "" {
		return nil, nil
	}

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		return nil, models.NewServiceError(models.KindSetup, "aws config", err)
	}

	if s3Client, err = s3.NewClient(awsConfig); err != nil {
		return nil, models.NewServiceError(models.KindSetup, "s3 client", err)
	}

	mirror := services.NewS3BackupMirror(services.S3BackupMirrorConfig{
		Bucket:   config.BackupBucket,
		Region:   config.AwsRegion,
		S3Client: s3Client,
	})

	if err = mirror.EnsureBucket(); err != nil {
		return nil, models.NewServiceError(models.KindSetup, config.BackupBucket, err)
	}

	return mirror, nil
}

func newJournal(ctx context.Context, config configuration.Config) (services.JournalServicer, error) {
	if config.JournalDSN == "" {
		return nil, nil
	}

	db, err := services.OpenJournalDB(ctx, config.JournalDSN)

	if err != nil {
		return nil, err
	}

	return services.NewJournalService(services.JournalServiceConfig{DB: db}), nil
}
