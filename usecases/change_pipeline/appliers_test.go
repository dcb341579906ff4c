package change_pipeline

import (
	"context"
	"testing"

	"github.com/momconnect/hub/mocks"
	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/usecases/executor_factory"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AppliersTestSuite struct {
	suite.Suite
	changeRepository              *mocks.ChangeRepository
	registrationRepository        *mocks.RegistrationRepository
	subscriptionRequestRepository *mocks.SubscriptionRequestRepository
	subscriptions                 *mocks.SubscriptionService
	identities                    *mocks.IdentityService
	executorFactory               executor_factory.ExecutorFactoryStub

	ctx context.Context
}

func (suite *AppliersTestSuite) SetupTest() {
	suite.changeRepository = new(mocks.ChangeRepository)
	suite.registrationRepository = new(mocks.RegistrationRepository)
	suite.subscriptionRequestRepository = new(mocks.SubscriptionRequestRepository)
	suite.subscriptions = new(mocks.SubscriptionService)
	suite.identities = new(mocks.IdentityService)
	suite.executorFactory = executor_factory.NewExecutorFactoryStub()

	suite.ctx = context.Background()
}

func (suite *AppliersTestSuite) makePipeline() *ChangePipeline {
	return NewChangePipeline(
		suite.executorFactory,
		suite.changeRepository,
		suite.registrationRepository,
		suite.subscriptionRequestRepository,
		suite.subscriptions,
		suite.identities,
	)
}

func (suite *AppliersTestSuite) AssertExpectations() {
	t := suite.T()
	suite.registrationRepository.AssertExpectations(t)
	suite.subscriptionRequestRepository.AssertExpectations(t)
	suite.subscriptions.AssertExpectations(t)
	suite.identities.AssertExpectations(t)
}

func TestAppliers(t *testing.T) {
	suite.Run(t, new(AppliersTestSuite))
}

func (suite *AppliersTestSuite) activePrebirthSubscriptions() []models.Subscription {
	return []models.Subscription{
		{
			Id:         "subscription1-4bf1-8779-c47b428e89d0",
			Identity:   motherRegistrantId,
			Active:     true,
			Lang:       "eng_ZA",
			Messageset: 11,
			Schedule:   101,
		},
		{
			Id:         "subscription2-4bf1-8779-c47b428e89d0",
			Identity:   motherRegistrantId,
			Active:     true,
			Lang:       "eng_ZA",
			Messageset: 21,
			Schedule:   121,
		},
	}
}

// A baby switch deactivates both active prebirth subscriptions and creates
// exactly one subscription request, targeting the pmtct postbirth
// messageset.
func (suite *AppliersTestSuite) TestApply_BabySwitch() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: motherRegistrantId,
		Action:       models.ActionBabySwitch,
		Data:         map[string]any{},
		Validated:    true,
	}

	suite.subscriptions.On("ListActiveSubscriptions", suite.ctx, motherRegistrantId).
		Return(suite.activePrebirthSubscriptions(), nil).Once()
	suite.subscriptions.On("GetMessageset", suite.ctx, 11).
		Return(models.MessageSet{Id: 11, ShortName: "pmtct_prebirth.patient.1", DefaultSchedule: 101}, nil).Once()
	suite.subscriptions.On("GetMessageset", suite.ctx, 21).
		Return(models.MessageSet{Id: 21, ShortName: "momconnect_prebirth.hw_full.1", DefaultSchedule: 121}, nil).Once()
	suite.subscriptions.On("DeactivateSubscription", suite.ctx, "subscription1-4bf1-8779-c47b428e89d0").
		Return(nil).Once()
	suite.subscriptions.On("DeactivateSubscription", suite.ctx, "subscription2-4bf1-8779-c47b428e89d0").
		Return(nil).Once()
	suite.registrationRepository.On("GetLatestRegistration", suite.ctx, mock.Anything,
		motherRegistrantId, (*models.RegistrationType)(nil)).
		Return(models.Registration{
			RegType: models.RegTypePmtctPrebirth,
			Data:    map[string]any{"language": "zul_ZA"},
		}, nil).Once()
	suite.subscriptions.On("GetMessagesetByShortname", suite.ctx, models.MessagesetPmtctPostbirth).
		Return(models.MessageSet{Id: 32, ShortName: models.MessagesetPmtctPostbirth, DefaultSchedule: 132}, nil).Once()
	suite.subscriptions.On("GetSchedule", suite.ctx, 132).
		Return(models.Schedule{Id: 132}, nil).Once()
	suite.subscriptionRequestRepository.On("CreateSubscriptionRequest", suite.ctx, mock.Anything,
		models.CreateSubscriptionRequestInput{
			Id:                 subscriptionRequestId(change.Id),
			RegistrantId:       motherRegistrantId,
			Messageset:         32,
			NextSequenceNumber: 1,
			Lang:               "zul_ZA",
			Schedule:           132,
		}).Return(nil).Once()

	err := pipeline.Apply(suite.ctx, change)

	suite.NoError(err)
	suite.AssertExpectations()
}

// Without a pmtct prebirth subscription there is nothing to switch: no
// deactivation, no new subscription request.
func (suite *AppliersTestSuite) TestApply_BabySwitch_NoPrebirthSubscriptions() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: motherRegistrantId,
		Action:       models.ActionBabySwitch,
		Data:         map[string]any{},
	}

	suite.subscriptions.On("ListActiveSubscriptions", suite.ctx, motherRegistrantId).
		Return([]models.Subscription{{
			Id:         "subscription3-4bf1-8779-c47b428e89d0",
			Active:     true,
			Lang:       "eng_ZA",
			Messageset: 32,
		}}, nil).Once()
	suite.subscriptions.On("GetMessageset", suite.ctx, 32).
		Return(models.MessageSet{Id: 32, ShortName: models.MessagesetPmtctPostbirth}, nil).Once()

	err := pipeline.Apply(suite.ctx, change)

	suite.NoError(err)
	suite.subscriptions.AssertNotCalled(suite.T(), "DeactivateSubscription")
	suite.subscriptionRequestRepository.AssertNotCalled(suite.T(), "CreateSubscriptionRequest")
}

// Re-running the applier derives the same subscription request id, so a
// retry after a partial failure cannot create a duplicate row.
func (suite *AppliersTestSuite) TestSubscriptionRequestIdIsStable() {
	changeId := uuid.New()
	suite.Equal(subscriptionRequestId(changeId), subscriptionRequestId(changeId))
	suite.NotEqual(subscriptionRequestId(changeId), subscriptionRequestId(uuid.New()))
}

func (suite *AppliersTestSuite) TestApply_PmtctLossSwitch_DeactivatesAllSubscriptions() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: motherRegistrantId,
		Action:       models.ActionPmtctLossSwitch,
		Data:         map[string]any{"reason": "miscarriage"},
	}

	suite.subscriptions.On("ListActiveSubscriptions", suite.ctx, motherRegistrantId).
		Return(suite.activePrebirthSubscriptions(), nil).Once()
	// deactivations run concurrently, on a context derived from suite.ctx
	suite.subscriptions.On("DeactivateSubscription", mock.Anything, "subscription1-4bf1-8779-c47b428e89d0").
		Return(nil).Once()
	suite.subscriptions.On("DeactivateSubscription", mock.Anything, "subscription2-4bf1-8779-c47b428e89d0").
		Return(nil).Once()

	err := pipeline.Apply(suite.ctx, change)

	suite.NoError(err)
	suite.AssertExpectations()
	suite.subscriptionRequestRepository.AssertNotCalled(suite.T(), "CreateSubscriptionRequest")
}

func (suite *AppliersTestSuite) TestApply_PmtctLossOptout_PropagatesTransientError() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: motherRegistrantId,
		Action:       models.ActionPmtctLossOptout,
		Data:         map[string]any{"reason": "stillbirth"},
	}

	transient := errors.New("stage-based messaging service returned status 503")
	suite.subscriptions.On("ListActiveSubscriptions", suite.ctx, motherRegistrantId).
		Return([]models.Subscription{}, transient).Once()

	err := pipeline.Apply(suite.ctx, change)

	suite.ErrorIs(err, transient)
}

func (suite *AppliersTestSuite) TestApply_NurseUpdateDetail_PatchesIdentity() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: nurseRegistrantId,
		Action:       models.ActionNurseUpdateDetail,
		Data: map[string]any{
			"faccode": "234567",
			// left over from a previous failed attempt, must not leak out
			models.InvalidFieldsKey: []any{"Faccode invalid"},
		},
	}

	suite.identities.On("UpdateIdentityDetails", suite.ctx, nurseRegistrantId,
		map[string]any{"faccode": "234567"}).Return(nil).Once()

	err := pipeline.Apply(suite.ctx, change)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *AppliersTestSuite) TestApply_NurseChangeMsisdn_PatchesNormalizedNumbers() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: nurseRegistrantId,
		Action:       models.ActionNurseChangeMsisdn,
		Data: map[string]any{
			"msisdn_old":    "+27821112222",
			"msisdn_new":    "0821113333",
			"msisdn_device": "0821113333",
		},
	}

	suite.identities.On("UpdateIdentityDetails", suite.ctx, nurseRegistrantId,
		map[string]any{
			"msisdn_registrant": "+27821113333",
			"msisdn_device":     "+27821113333",
		}).Return(nil).Once()

	err := pipeline.Apply(suite.ctx, change)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *AppliersTestSuite) TestApply_NurseOptout_DeactivatesNurseconnectOnly() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: nurseRegistrantId,
		Action:       models.ActionNurseOptout,
		Data:         map[string]any{"reason": "job_change"},
	}

	suite.subscriptions.On("GetMessagesetByShortname", suite.ctx, models.MessagesetNurseconnect).
		Return(models.MessageSet{Id: 61, ShortName: models.MessagesetNurseconnect, DefaultSchedule: 161}, nil).Once()
	suite.subscriptions.On("ListActiveSubscriptionsByMessageset", suite.ctx, nurseRegistrantId, 61).
		Return([]models.Subscription{{
			Id:         "subscription1-4bf1-8779-c47b428e89d0",
			Active:     true,
			Lang:       "eng_ZA",
			Messageset: 61,
			Schedule:   161,
		}}, nil).Once()
	suite.subscriptions.On("DeactivateSubscription", mock.Anything, "subscription1-4bf1-8779-c47b428e89d0").
		Return(nil).Once()

	err := pipeline.Apply(suite.ctx, change)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *AppliersTestSuite) TestApply_UnknownActionIsConfigurationError() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: motherRegistrantId,
		Action:       "momconnect_babyloss_switch",
		Data:         map[string]any{},
	}

	err := pipeline.Apply(suite.ctx, change)

	suite.ErrorIs(err, models.ConfigurationError)
}

func (suite *AppliersTestSuite) TestApply_PermanentExternalErrorPropagates() {
	pipeline := suite.makePipeline()
	change := models.Change{
		Id:           uuid.New(),
		RegistrantId: motherRegistrantId,
		Action:       models.ActionPmtctNonlossOptout,
		Data:         map[string]any{"reason": "other"},
	}

	suite.subscriptions.On("ListActiveSubscriptions", suite.ctx, motherRegistrantId).
		Return(suite.activePrebirthSubscriptions(), nil).Once()
	suite.subscriptions.On("DeactivateSubscription", mock.Anything, "subscription1-4bf1-8779-c47b428e89d0").
		Return(errors.Wrap(models.PermanentExternalError, "subscription no longer exists")).Once()
	// the sibling deactivation may or may not run before the group sees the error
	suite.subscriptions.On("DeactivateSubscription", mock.Anything, "subscription2-4bf1-8779-c47b428e89d0").
		Return(nil).Maybe()

	err := pipeline.Apply(suite.ctx, change)

	suite.ErrorIs(err, models.PermanentExternalError)
}
