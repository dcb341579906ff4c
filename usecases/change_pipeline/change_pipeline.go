package change_pipeline

import (
	"context"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories"
	"github.com/momconnect/hub/usecases/executor_factory"

	"github.com/google/uuid"
)

type changeRepository interface {
	GetChangeById(ctx context.Context, exec repositories.Executor,
		changeId uuid.UUID) (models.Change, error)
	UpdateChange(ctx context.Context, exec repositories.Executor,
		input models.UpdateChangeInput) error
}

type registrationRepository interface {
	GetLatestRegistration(ctx context.Context, exec repositories.Executor,
		registrantId string, regType *models.RegistrationType) (models.Registration, error)
}

type subscriptionRequestRepository interface {
	CreateSubscriptionRequest(ctx context.Context, exec repositories.Executor,
		input models.CreateSubscriptionRequestInput) error
}

type subscriptionService interface {
	ListActiveSubscriptions(ctx context.Context, registrantId string) ([]models.Subscription, error)
	ListActiveSubscriptionsByMessageset(ctx context.Context, registrantId string,
		messagesetId int) ([]models.Subscription, error)
	DeactivateSubscription(ctx context.Context, subscriptionId string) error
	GetMessageset(ctx context.Context, messagesetId int) (models.MessageSet, error)
	GetMessagesetByShortname(ctx context.Context, shortName string) (models.MessageSet, error)
	GetSchedule(ctx context.Context, scheduleId int) (models.Schedule, error)
}

type identityService interface {
	UpdateIdentityDetails(ctx context.Context, identityId string, details map[string]any) error
}

type validatorFunc func(change models.Change) []string

type applierFunc func(ctx context.Context, change models.Change) error

// ChangePipeline validates a Change against its action's rules and, once
// valid, applies the action's external effects. Both halves tolerate being
// re-run on the same record.
type ChangePipeline struct {
	executorFactory               executor_factory.ExecutorFactory
	changeRepository              changeRepository
	registrationRepository        registrationRepository
	subscriptionRequestRepository subscriptionRequestRepository
	subscriptions                 subscriptionService
	identities                    identityService

	validators map[models.ChangeAction]validatorFunc
	appliers   map[models.ChangeAction]applierFunc
}

func NewChangePipeline(
	executorFactory executor_factory.ExecutorFactory,
	changeRepository changeRepository,
	registrationRepository registrationRepository,
	subscriptionRequestRepository subscriptionRequestRepository,
	subscriptions subscriptionService,
	identities identityService,
) *ChangePipeline {
	pipeline := &ChangePipeline{
		executorFactory:               executorFactory,
		changeRepository:              changeRepository,
		registrationRepository:        registrationRepository,
		subscriptionRequestRepository: subscriptionRequestRepository,
		subscriptions:                 subscriptions,
		identities:                    identities,
	}

	pipeline.validators = map[models.ChangeAction]validatorFunc{
		models.ActionBabySwitch:         validateBabySwitch,
		models.ActionPmtctLossSwitch:    validatePmtctLoss,
		models.ActionPmtctLossOptout:    validatePmtctLoss,
		models.ActionPmtctNonlossOptout: validatePmtctNonlossOptout,
		models.ActionNurseUpdateDetail:  validateNurseUpdateDetail,
		models.ActionNurseChangeMsisdn:  validateNurseChangeMsisdn,
		models.ActionNurseOptout:        validateNurseOptout,
	}
	pipeline.appliers = map[models.ChangeAction]applierFunc{
		models.ActionBabySwitch:         pipeline.applyBabySwitch,
		models.ActionPmtctLossSwitch:    pipeline.applyDeactivateAllSubscriptions,
		models.ActionPmtctLossOptout:    pipeline.applyDeactivateAllSubscriptions,
		models.ActionPmtctNonlossOptout: pipeline.applyDeactivateAllSubscriptions,
		models.ActionNurseUpdateDetail:  pipeline.applyNurseUpdateDetail,
		models.ActionNurseChangeMsisdn:  pipeline.applyNurseChangeMsisdn,
		models.ActionNurseOptout:        pipeline.applyNurseOptout,
	}

	return pipeline
}

// ValidateImplement is the unit of work executed per Change: re-fetch the
// record, validate it, and apply the action's effects when valid. Returns
// whether the change ended up validated.
func (p *ChangePipeline) ValidateImplement(ctx context.Context, changeId uuid.UUID) (bool, error) {
	exec := p.executorFactory.NewExecutor()

	change, err := p.changeRepository.GetChangeById(ctx, exec, changeId)
	if err != nil {
		return false, err
	}

	valid, err := p.Validate(ctx, change)
	if err != nil || !valid {
		return false, err
	}

	if err := p.Apply(ctx, change); err != nil {
		return false, err
	}
	return true, nil
}
