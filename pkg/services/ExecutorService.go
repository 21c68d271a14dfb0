package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/adampresley/flickralbums/pkg/models"
)

const dryRunIDPrefix = "dryrun-"

type ExecutorServicer interface {
	Execute(ctx context.Context, plan models.Plan) models.ExecutionReport
}

type ExecutorServiceConfig struct {
	PhotoHost PhotoHostServicer
	Images    ImageServicer
	Retry     RetryPolicy
	DryRun    bool
	Logger    *slog.Logger
	// Observer, when set, is called with every result as soon as it is known.
	Observer func(models.OperationResult)
}

/*
ExecutorService applies a plan one operation at a time, in plan order.
A failed operation is logged and recorded and the run moves on; nothing
but cancellation stops a run early. In dry-run mode no call reaches the
photo host and ids that would have been produced are made up so later
operations still read sensibly.
*/
type ExecutorService struct {
	photoHost PhotoHostServicer
	images    ImageServicer
	retry     RetryPolicy
	dryRun    bool
	logger    *slog.Logger
	observer  func(models.OperationResult)
}

func NewExecutorService(config ExecutorServiceConfig) ExecutorService {
	images := config.Images

	if images == nil {
		images = NewImageService(ImageServiceConfig{})
	}

	logger := config.Logger

	if logger == nil {
		logger = slog.Default()
	}

	return ExecutorService{
		photoHost: config.PhotoHost,
		images:    images,
		retry:     config.Retry,
		dryRun:    config.DryRun,
		logger:    logger,
		observer:  config.Observer,
	}
}

func (s ExecutorService) Execute(ctx context.Context, plan models.Plan) models.ExecutionReport {
	var (
		err      error
		resolved models.Operation
	)

	report := models.ExecutionReport{DryRun: s.dryRun}
	produced := map[string]string{}

	for index, op := range plan.Operations {
		if ctx.Err() != nil {
			s.logger.Warn("run cancelled, remaining operations not attempted", "intent", plan.Intent, "remaining", len(plan.Operations)-index)
			break
		}

		l := s.logger.With("intent", plan.Intent, "index", index, "kind", op.Kind)
		result := models.OperationResult{Index: index, Operation: op}

		if s.dryRun {
			result.Resolved = resolveLenient(op, produced)
			result.Outcome = models.OutcomeDryRun

			if op.Ref != "" {
				result.ProducedID = dryRunIDPrefix + op.Ref
				produced[op.Ref] = result.ProducedID
			}

			l.Info("[DRY RUN] " + result.Resolved.String())
			s.record(&report, result)
			continue
		}

		if resolved, err = resolve(op, produced); err != nil {
			result.Resolved = op
			result.Outcome = models.OutcomeFailed
			result.Err = models.NewServiceError(models.KindOperation, string(op.Kind), err)

			l.Error("skipping operation, an earlier operation it depends on did not produce an id", "operation", op.String(), "error", err)
			s.record(&report, result)
			continue
		}

		result.Resolved = resolved
		result.ProducedID, result.Attempts, err = s.apply(ctx, resolved)

		switch {
		case err == nil:
			result.Outcome = models.OutcomeSucceeded

			if op.Ref != "" {
				produced[op.Ref] = result.ProducedID
			}

			l.Info(resolved.String(), "producedID", result.ProducedID, "attempts", result.Attempts)

		case models.IsKind(err, models.KindAlreadySatisfied):
			result.Outcome = models.OutcomeAlreadySatisfied

			if op.Ref != "" && result.ProducedID != "" {
				produced[op.Ref] = result.ProducedID
			}

			l.Info("already done: "+resolved.String(), "albumID", resolved.AlbumID, "photoID", resolved.PhotoID)

		default:
			result.Outcome = models.OutcomeFailed
			result.ProducedID = ""
			result.Err = err

			l.Error("operation failed",
				"operation", resolved.String(),
				"albumID", resolved.AlbumID,
				"photoID", resolved.PhotoID,
				"localPath", resolved.LocalPath,
				"attempts", result.Attempts,
				"error", err,
			)
		}

		s.record(&report, result)
	}

	return report
}

func (s ExecutorService) record(report *models.ExecutionReport, result models.OperationResult) {
	report.Add(result)

	if s.observer != nil {
		s.observer(result)
	}
}

func (s ExecutorService) apply(ctx context.Context, op models.Operation) (string, int, error) {
	var (
		err      error
		attempts int
		id       string
	)

	attempts, err = s.retry.Do(ctx, string(op.Kind), func() error {
		var callErr error

		switch op.Kind {
		case models.OperationCreateAlbum:
			id, callErr = s.photoHost.CreateAlbum(ctx, op.Title, op.Description, op.PrimaryPhotoID)
		case models.OperationDeleteAlbum:
			id = op.AlbumID
			callErr = s.photoHost.DeleteAlbum(ctx, op.AlbumID)
		case models.OperationRenameAlbum:
			callErr = s.photoHost.EditAlbumMeta(ctx, op.AlbumID, op.Title, op.Description)
		case models.OperationAddPhotoToAlbum:
			callErr = s.photoHost.AddPhotoToAlbum(ctx, op.AlbumID, op.PhotoID)
		case models.OperationDeletePhoto:
			callErr = s.photoHost.DeletePhoto(ctx, op.PhotoID)
		case models.OperationUploadPhoto:
			id, callErr = s.upload(ctx, op)
		default:
			callErr = models.NewServiceError(models.KindOperation, string(op.Kind), fmt.Errorf("unknown operation kind"))
		}

		return callErr
	})

	return id, attempts, err
}

func (s ExecutorService) upload(ctx context.Context, op models.Operation) (string, error) {
	var (
		err  error
		body io.ReadCloser
	)

	if body, err = s.images.Open(op.LocalPath); err != nil {
		return "", err
	}

	defer body.Close()

	return s.photoHost.UploadPhoto(ctx, body, filepath.Base(op.LocalPath), op.Title)
}

/*
resolve replaces placeholders with produced ids. It fails when a placeholder
or the required ref was never produced.
*/
func resolve(op models.Operation, produced map[string]string) (models.Operation, error) {
	var err error

	if op.Requires != "" {
		if _, found := produced[op.Requires]; !found {
			err = fmt.Errorf("%w: %s", models.ErrUnresolvedReference, op.Requires)
		}
	}

	substitute := func(value string) string {
		ref, ok := models.PlaceholderRef(value)

		if !ok {
			return value
		}

		id, found := produced[ref]

		if !found {
			err = fmt.Errorf("%w: %s", models.ErrUnresolvedReference, ref)
			return value
		}

		return id
	}

	op.AlbumID = substitute(op.AlbumID)
	op.PhotoID = substitute(op.PhotoID)
	op.PrimaryPhotoID = substitute(op.PrimaryPhotoID)

	return op, err
}

func resolveLenient(op models.Operation, produced map[string]string) models.Operation {
	resolved, _ := resolve(op, produced)
	return resolved
}
