package usecases

import (
	"context"
	"testing"

	"github.com/momconnect/hub/mocks"
	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/usecases/executor_factory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ChangeUsecaseTestSuite struct {
	suite.Suite
	changeRepository    *mocks.ChangeRepository
	sourceRepository    *mocks.SourceRepository
	taskQueueRepository *mocks.TaskQueueRepository
	executorFactory     executor_factory.ExecutorFactoryStub
	transactionFactory  executor_factory.TransactionFactoryStub

	ctx      context.Context
	sourceId uuid.UUID
}

func (suite *ChangeUsecaseTestSuite) SetupTest() {
	suite.changeRepository = new(mocks.ChangeRepository)
	suite.sourceRepository = new(mocks.SourceRepository)
	suite.taskQueueRepository = new(mocks.TaskQueueRepository)
	suite.executorFactory = executor_factory.NewExecutorFactoryStub()
	suite.transactionFactory = executor_factory.NewTransactionFactoryStub(suite.executorFactory)

	suite.ctx = context.Background()
	suite.sourceId = uuid.New()
}

func (suite *ChangeUsecaseTestSuite) makeUsecase() ChangeUsecase {
	return ChangeUsecase{
		executorFactory:     suite.executorFactory,
		transactionFactory:  suite.transactionFactory,
		changeRepository:    suite.changeRepository,
		sourceRepository:    suite.sourceRepository,
		taskQueueRepository: suite.taskQueueRepository,
	}
}

func TestChangeUsecase(t *testing.T) {
	suite.Run(t, new(ChangeUsecaseTestSuite))
}

func (suite *ChangeUsecaseTestSuite) TestCreateChange_EnqueuesTaskInSameTransaction() {
	input := models.CreateChangeInput{
		RegistrantId: "mother01-63e2-4acc-9b94-26663b9bc267",
		Action:       models.ActionBabySwitch,
		Data:         map[string]any{},
		SourceId:     suite.sourceId,
	}

	suite.sourceRepository.On("GetSourceById", suite.ctx, mock.Anything, suite.sourceId).
		Return(models.Source{Id: suite.sourceId, Authority: models.AuthorityPatient}, nil).Once()

	var createdId uuid.UUID
	suite.changeRepository.On("CreateChange", suite.ctx, mock.Anything,
		mock.MatchedBy(func(id uuid.UUID) bool {
			createdId = id
			return id != uuid.Nil
		}), input).Return(nil).Once()
	suite.taskQueueRepository.On("EnqueueChangeValidateImplementTask", suite.ctx, mock.Anything,
		mock.MatchedBy(func(id uuid.UUID) bool { return id == createdId })).
		Return(nil).Once()
	suite.changeRepository.On("GetChangeById", suite.ctx, mock.Anything,
		mock.MatchedBy(func(id uuid.UUID) bool { return id == createdId })).
		Return(models.Change{
			RegistrantId: input.RegistrantId,
			Action:       input.Action,
			Data:         map[string]any{},
		}, nil).Once()

	change, err := suite.makeUsecase().CreateChange(suite.ctx, input)

	suite.NoError(err)
	suite.False(change.Validated)
	suite.changeRepository.AssertExpectations(suite.T())
	suite.taskQueueRepository.AssertExpectations(suite.T())
}

func (suite *ChangeUsecaseTestSuite) TestCreateChange_UnknownAction() {
	input := models.CreateChangeInput{
		RegistrantId: "mother01-63e2-4acc-9b94-26663b9bc267",
		Action:       "momconnect_babyloss_switch",
		SourceId:     suite.sourceId,
	}

	_, err := suite.makeUsecase().CreateChange(suite.ctx, input)

	suite.ErrorIs(err, models.BadParameterError)
	suite.changeRepository.AssertNotCalled(suite.T(), "CreateChange")
}

func (suite *ChangeUsecaseTestSuite) TestCreateChange_UnknownSource() {
	input := models.CreateChangeInput{
		RegistrantId: "mother01-63e2-4acc-9b94-26663b9bc267",
		Action:       models.ActionBabySwitch,
		SourceId:     suite.sourceId,
	}

	suite.sourceRepository.On("GetSourceById", suite.ctx, mock.Anything, suite.sourceId).
		Return(models.Source{}, models.NotFoundError).Once()

	_, err := suite.makeUsecase().CreateChange(suite.ctx, input)

	suite.ErrorIs(err, models.BadParameterError)
	suite.changeRepository.AssertNotCalled(suite.T(), "CreateChange")
}
