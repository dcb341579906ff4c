package change_pipeline

import (
	"context"
	"testing"

	"github.com/momconnect/hub/models"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type validateImplementUsecaseMock struct {
	mock.Mock
}

func (m *validateImplementUsecaseMock) ValidateImplement(ctx context.Context,
	changeId uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, changeId)
	return args.Bool(0), args.Error(1)
}

func makeJob(changeId uuid.UUID) *river.Job[models.ChangeValidateImplementArgs] {
	return &river.Job[models.ChangeValidateImplementArgs]{
		Args: models.ChangeValidateImplementArgs{ChangeId: changeId},
	}
}

func TestValidateImplementWorker_Success(t *testing.T) {
	ctx := context.Background()
	changeId := uuid.New()

	pipeline := new(validateImplementUsecaseMock)
	pipeline.On("ValidateImplement", ctx, changeId).Return(true, nil).Once()

	worker := NewValidateImplementWorker(pipeline)
	err := worker.Work(ctx, makeJob(changeId))

	assert.NoError(t, err)
	pipeline.AssertExpectations(t)
}

// An invalid change is a normal outcome, not a job failure: the errors are
// stored on the record and the job completes.
func TestValidateImplementWorker_InvalidChangeCompletes(t *testing.T) {
	ctx := context.Background()
	changeId := uuid.New()

	pipeline := new(validateImplementUsecaseMock)
	pipeline.On("ValidateImplement", ctx, changeId).Return(false, nil).Once()

	worker := NewValidateImplementWorker(pipeline)
	err := worker.Work(ctx, makeJob(changeId))

	assert.NoError(t, err)
}

func TestValidateImplementWorker_TransientErrorRetries(t *testing.T) {
	ctx := context.Background()
	changeId := uuid.New()

	transient := errors.New("stage-based messaging service returned status 503")
	pipeline := new(validateImplementUsecaseMock)
	pipeline.On("ValidateImplement", ctx, changeId).Return(false, transient).Once()

	worker := NewValidateImplementWorker(pipeline)
	err := worker.Work(ctx, makeJob(changeId))

	// the transient error is returned unwrapped so river retries the job
	assert.Same(t, transient, err)
}

func TestValidateImplementWorker_PermanentErrorsCancelJob(t *testing.T) {
	ctx := context.Background()

	permanentErrors := []error{
		errors.Wrap(models.NotFoundError, "change not found"),
		errors.Wrap(models.ErrUnknownChangeAction, "no validator registered for action 'bogus'"),
		errors.Wrap(models.PermanentExternalError, "subscription no longer exists"),
	}

	for _, permanent := range permanentErrors {
		changeId := uuid.New()
		pipeline := new(validateImplementUsecaseMock)
		pipeline.On("ValidateImplement", ctx, changeId).Return(false, permanent).Once()

		worker := NewValidateImplementWorker(pipeline)
		err := worker.Work(ctx, makeJob(changeId))

		// the job is cancelled, not returned as-is for retry
		assert.ErrorIs(t, err, permanent)
		assert.NotSame(t, permanent, err, "expected job cancellation for %v", permanent)
	}
}
