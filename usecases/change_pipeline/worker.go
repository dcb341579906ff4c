package change_pipeline

import (
	"context"
	"time"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

type changeValidateImplementUsecase interface {
	ValidateImplement(ctx context.Context, changeId uuid.UUID) (bool, error)
}

// ValidateImplementWorker runs the validate+apply cycle for one Change.
// Delivery is at least once: a crashed or transiently failed run is retried
// with backoff, and the pipeline tolerates the re-run.
type ValidateImplementWorker struct {
	river.WorkerDefaults[models.ChangeValidateImplementArgs]

	pipeline changeValidateImplementUsecase
}

func NewValidateImplementWorker(pipeline changeValidateImplementUsecase) *ValidateImplementWorker {
	return &ValidateImplementWorker{pipeline: pipeline}
}

func (w *ValidateImplementWorker) Timeout(job *river.Job[models.ChangeValidateImplementArgs]) time.Duration {
	return time.Minute
}

func (w *ValidateImplementWorker) Work(ctx context.Context,
	job *river.Job[models.ChangeValidateImplementArgs],
) error {
	logger := utils.LoggerFromContext(ctx)

	validated, err := w.pipeline.ValidateImplement(ctx, job.Args.ChangeId)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "change processed",
			"change_id", job.Args.ChangeId.String(),
			"validated", validated)
		return nil

	// A missing change, an unregistered action or a permanently broken
	// external reference will not heal on retry: cancel the job and page.
	case errors.Is(err, models.NotFoundError),
		errors.Is(err, models.ConfigurationError),
		errors.Is(err, models.PermanentExternalError):
		utils.LogAndReportSentryError(ctx, err)
		return river.JobCancel(err)

	default:
		return err
	}
}
