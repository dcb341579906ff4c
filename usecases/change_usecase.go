package usecases

import (
	"context"
	"fmt"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories"
	"github.com/momconnect/hub/usecases/executor_factory"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type changeUsecaseRepository interface {
	GetChangeById(ctx context.Context, exec repositories.Executor,
		changeId uuid.UUID) (models.Change, error)
	CreateChange(ctx context.Context, exec repositories.Executor,
		changeId uuid.UUID, input models.CreateChangeInput) error
}

type sourceRepository interface {
	GetSourceById(ctx context.Context, exec repositories.Executor,
		sourceId uuid.UUID) (models.Source, error)
}

type enqueueChangeTask interface {
	EnqueueChangeValidateImplementTask(ctx context.Context,
		tx repositories.Transaction, changeId uuid.UUID) error
}

// ChangeUsecase creates Change records and hands them to the async
// pipeline. The insert and the task enqueue share one transaction, so a
// stored change always has a pending job and vice versa.
type ChangeUsecase struct {
	executorFactory     executor_factory.ExecutorFactory
	transactionFactory  executor_factory.TransactionFactory
	changeRepository    changeUsecaseRepository
	sourceRepository    sourceRepository
	taskQueueRepository enqueueChangeTask
}

func (usecase ChangeUsecase) CreateChange(ctx context.Context,
	input models.CreateChangeInput,
) (models.Change, error) {
	logger := utils.LoggerFromContext(ctx)

	if _, err := models.ChangeActionFrom(string(input.Action)); err != nil {
		return models.Change{}, err
	}
	if _, err := usecase.sourceRepository.GetSourceById(ctx,
		usecase.executorFactory.NewExecutor(), input.SourceId); err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.Change{}, errors.Wrap(models.BadParameterError,
				fmt.Sprintf("source %s does not exist", input.SourceId))
		}
		return models.Change{}, err
	}
	if input.Data == nil {
		input.Data = map[string]any{}
	}

	changeId := uuid.New()
	change, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (models.Change, error) {
			if err := usecase.changeRepository.CreateChange(ctx, tx, changeId, input); err != nil {
				return models.Change{}, err
			}
			if err := usecase.taskQueueRepository.EnqueueChangeValidateImplementTask(
				ctx, tx, changeId); err != nil {
				return models.Change{}, err
			}
			return usecase.changeRepository.GetChangeById(ctx, tx, changeId)
		})
	if err != nil {
		return models.Change{}, err
	}

	logger.InfoContext(ctx, "change created",
		"change_id", change.Id.String(),
		"action", string(change.Action),
		"registrant_id", change.RegistrantId)
	return change, nil
}
