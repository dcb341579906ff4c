package change_pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentDeactivations = 4

// Apply runs the action's external effects. Appliers are idempotent:
// re-running one after a partial failure re-reads the remote state and only
// acts on what is still pending.
func (p *ChangePipeline) Apply(ctx context.Context, change models.Change) error {
	applier, ok := p.appliers[change.Action]
	if !ok {
		return errors.Wrap(models.ErrUnknownChangeAction,
			fmt.Sprintf("no applier registered for action '%s'", change.Action))
	}

	if err := applier(ctx, change); err != nil {
		changesAppliedCounter.WithLabelValues(string(change.Action), "error").Inc()
		return err
	}
	changesAppliedCounter.WithLabelValues(string(change.Action), "ok").Inc()
	return nil
}

// applyBabySwitch moves a registrant from the prebirth track to the
// postbirth one: every active prebirth subscription is deactivated, and a
// pmtct registrant gets a single new subscription request targeting the
// pmtct postbirth messageset.
func (p *ChangePipeline) applyBabySwitch(ctx context.Context, change models.Change) error {
	logger := utils.LoggerFromContext(ctx)

	subscriptions, err := p.subscriptions.ListActiveSubscriptions(ctx, change.RegistrantId)
	if err != nil {
		return err
	}

	needsPostbirth := false
	postbirthLang := ""
	for _, subscription := range subscriptions {
		messageset, err := p.subscriptions.GetMessageset(ctx, subscription.Messageset)
		if err != nil {
			return err
		}
		if !strings.Contains(messageset.ShortName, "prebirth") {
			continue
		}

		if err := p.subscriptions.DeactivateSubscription(ctx, subscription.Id); err != nil {
			return err
		}
		logger.InfoContext(ctx, "deactivated prebirth subscription",
			"subscription_id", subscription.Id,
			"messageset", messageset.ShortName)

		if strings.HasPrefix(messageset.ShortName, "pmtct_prebirth") {
			needsPostbirth = true
			postbirthLang = subscription.Lang
		}
	}

	if !needsPostbirth {
		return nil
	}

	lang, err := p.registrantLanguage(ctx, change.RegistrantId, postbirthLang)
	if err != nil {
		return err
	}

	postbirth, err := p.subscriptions.GetMessagesetByShortname(ctx, models.MessagesetPmtctPostbirth)
	if err != nil {
		return err
	}
	schedule, err := p.subscriptions.GetSchedule(ctx, postbirth.DefaultSchedule)
	if err != nil {
		return err
	}

	return p.subscriptionRequestRepository.CreateSubscriptionRequest(ctx,
		p.executorFactory.NewExecutor(),
		models.CreateSubscriptionRequestInput{
			Id:                 subscriptionRequestId(change.Id),
			RegistrantId:       change.RegistrantId,
			Messageset:         postbirth.Id,
			NextSequenceNumber: 1,
			Lang:               lang,
			Schedule:           schedule.Id,
		})
}

// registrantLanguage reads the message language off the registrant's latest
// registration, falling back to the language of the subscription being
// replaced when no registration is on file.
func (p *ChangePipeline) registrantLanguage(ctx context.Context, registrantId,
	fallback string,
) (string, error) {
	registration, err := p.registrationRepository.GetLatestRegistration(ctx,
		p.executorFactory.NewExecutor(), registrantId, nil)
	if errors.Is(err, models.NotFoundError) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return registration.Language(fallback), nil
}

// subscriptionRequestId derives a stable id from the change, so a retried
// applier writes the same subscription request row instead of a duplicate.
func subscriptionRequestId(changeId uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(changeId, []byte("subscription_request"))
}

func (p *ChangePipeline) applyDeactivateAllSubscriptions(ctx context.Context,
	change models.Change,
) error {
	subscriptions, err := p.subscriptions.ListActiveSubscriptions(ctx, change.RegistrantId)
	if err != nil {
		return err
	}
	return p.deactivateAll(ctx, subscriptions)
}

// deactivateAll deactivates the given subscriptions, a few at a time. Order
// does not matter, and each deactivation is idempotent, so a partial failure
// just leaves work for the retried job.
func (p *ChangePipeline) deactivateAll(ctx context.Context, subscriptions []models.Subscription) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentDeactivations)

	for _, subscription := range subscriptions {
		group.Go(func() error {
			return p.subscriptions.DeactivateSubscription(ctx, subscription.Id)
		})
	}
	return group.Wait()
}

func (p *ChangePipeline) applyNurseUpdateDetail(ctx context.Context, change models.Change) error {
	details := make(map[string]any, len(change.Data))
	for key, value := range change.Data {
		if key == models.InvalidFieldsKey {
			continue
		}
		details[key] = value
	}
	return p.identities.UpdateIdentityDetails(ctx, change.RegistrantId, details)
}

func (p *ChangePipeline) applyNurseChangeMsisdn(ctx context.Context, change models.Change) error {
	msisdnNew, _ := stringField(change.Data, "msisdn_new")
	msisdnDevice, _ := stringField(change.Data, "msisdn_device")

	return p.identities.UpdateIdentityDetails(ctx, change.RegistrantId, map[string]any{
		"msisdn_registrant": NormalizeMsisdn(msisdnNew),
		"msisdn_device":     NormalizeMsisdn(msisdnDevice),
	})
}

func (p *ChangePipeline) applyNurseOptout(ctx context.Context, change models.Change) error {
	nurseconnect, err := p.subscriptions.GetMessagesetByShortname(ctx,
		models.MessagesetNurseconnect)
	if err != nil {
		return err
	}

	subscriptions, err := p.subscriptions.ListActiveSubscriptionsByMessageset(ctx,
		change.RegistrantId, nurseconnect.Id)
	if err != nil {
		return err
	}
	return p.deactivateAll(ctx, subscriptions)
}
