package repositories

import (
	"context"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

const (
	// at 1sec*attempt^4 that's roughly 90min for the 6th attempt, enough to
	// ride out an outage of the messaging service
	nbRetriesValidateImplement = 6
	priorityValidateImplement  = 2
)

// ChangesQueue is the river queue all change pipeline jobs run on.
const ChangesQueue = "changes"

type TaskQueueRepository interface {
	EnqueueChangeValidateImplementTask(
		ctx context.Context,
		tx Transaction,
		changeId uuid.UUID,
	) error
}

type riverRepository struct {
	client *river.Client[pgx.Tx]
}

func NewTaskQueueRepository(client *river.Client[pgx.Tx]) TaskQueueRepository {
	return riverRepository{client: client}
}

func (r riverRepository) EnqueueChangeValidateImplementTask(
	ctx context.Context,
	tx Transaction,
	changeId uuid.UUID,
) error {
	res, err := r.client.InsertTx(ctx, tx.RawTx(), models.ChangeValidateImplementArgs{
		ChangeId: changeId,
	}, &river.InsertOpts{
		MaxAttempts: nbRetriesValidateImplement,
		Priority:    priorityValidateImplement,
		Queue:       ChangesQueue,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Enqueued change validate-implement task",
		"change_id", changeId, "job_id", res.Job.ID)
	return nil
}
