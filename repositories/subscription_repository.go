package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/momconnect/hub/infra"
	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/pure_utils"
	"github.com/momconnect/hub/repositories/httpmodels"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
)

// SubscriptionRepository is the client for the stage-based messaging
// service. All calls are blocking; timeouts come from the underlying HTTP
// client and surface as retryable errors.
type SubscriptionRepository interface {
	ListActiveSubscriptions(ctx context.Context, registrantId string) ([]models.Subscription, error)
	ListActiveSubscriptionsByMessageset(ctx context.Context, registrantId string,
		messagesetId int) ([]models.Subscription, error)
	DeactivateSubscription(ctx context.Context, subscriptionId string) error
	GetMessageset(ctx context.Context, messagesetId int) (models.MessageSet, error)
	GetMessagesetByShortname(ctx context.Context, shortName string) (models.MessageSet, error)
	GetSchedule(ctx context.Context, scheduleId int) (models.Schedule, error)
}

const nbRetriesIdempotentGet = 3

type StageBasedMessagingRepository struct {
	stageBasedMessaging infra.StageBasedMessaging
	client              *http.Client
}

func NewStageBasedMessagingRepository(stageBasedMessaging infra.StageBasedMessaging,
	client *http.Client,
) *StageBasedMessagingRepository {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &StageBasedMessagingRepository{
		stageBasedMessaging: stageBasedMessaging,
		client:              client,
	}
}

func (repo *StageBasedMessagingRepository) ListActiveSubscriptions(ctx context.Context,
	registrantId string,
) ([]models.Subscription, error) {
	u := fmt.Sprintf("%s/api/v1/subscriptions/?active=True&id=%s",
		repo.stageBasedMessaging.Url(), registrantId)
	return repo.listSubscriptions(ctx, u)
}

func (repo *StageBasedMessagingRepository) ListActiveSubscriptionsByMessageset(ctx context.Context,
	registrantId string, messagesetId int,
) ([]models.Subscription, error) {
	u := fmt.Sprintf("%s/api/v1/subscriptions/?active=True&messageset=%d&id=%s",
		repo.stageBasedMessaging.Url(), messagesetId, registrantId)
	return repo.listSubscriptions(ctx, u)
}

func (repo *StageBasedMessagingRepository) listSubscriptions(ctx context.Context, u string) ([]models.Subscription, error) {
	subscriptions := make([]models.Subscription, 0)

	// follow pagination until the service stops returning a next link
	for next := &u; next != nil; {
		var page httpmodels.HTTPSubscriptionList
		if err := repo.getJson(ctx, *next, &page); err != nil {
			return nil, errors.Wrap(err, "could not list subscriptions")
		}
		subscriptions = append(subscriptions,
			pure_utils.Map(page.Results, httpmodels.AdaptSubscription)...)
		next = page.Next
	}

	return subscriptions, nil
}

// DeactivateSubscription is a no-op on an already-inactive subscription:
// the service accepts the PATCH regardless of the current active flag.
func (repo *StageBasedMessagingRepository) DeactivateSubscription(ctx context.Context,
	subscriptionId string,
) error {
	u := fmt.Sprintf("%s/api/v1/subscriptions/%s/", repo.stageBasedMessaging.Url(), subscriptionId)

	body, err := json.Marshal(map[string]any{"active": false})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	repo.setHeaders(req)

	resp, err := repo.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not deactivate subscription")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrap(models.PermanentExternalError,
			fmt.Sprintf("subscription %s no longer exists", subscriptionId))
	case resp.StatusCode >= 300:
		return errors.New(fmt.Sprintf(
			"stage-based messaging service returned status %d deactivating subscription %s",
			resp.StatusCode, subscriptionId))
	}
	return nil
}

func (repo *StageBasedMessagingRepository) GetMessageset(ctx context.Context,
	messagesetId int,
) (models.MessageSet, error) {
	u := fmt.Sprintf("%s/api/v1/messageset/%d/", repo.stageBasedMessaging.Url(), messagesetId)

	var messageset httpmodels.HTTPMessageSet
	if err := repo.getJson(ctx, u, &messageset); err != nil {
		return models.MessageSet{}, errors.Wrap(err,
			fmt.Sprintf("could not get messageset %d", messagesetId))
	}
	return httpmodels.AdaptMessageSet(messageset), nil
}

func (repo *StageBasedMessagingRepository) GetMessagesetByShortname(ctx context.Context,
	shortName string,
) (models.MessageSet, error) {
	u := fmt.Sprintf("%s/api/v1/messageset/?short_name=%s", repo.stageBasedMessaging.Url(), shortName)

	var page httpmodels.HTTPMessageSetList
	if err := repo.getJson(ctx, u, &page); err != nil {
		return models.MessageSet{}, errors.Wrap(err,
			fmt.Sprintf("could not get messageset %s", shortName))
	}
	if len(page.Results) != 1 {
		return models.MessageSet{}, errors.Wrap(models.PermanentExternalError,
			fmt.Sprintf("expected exactly one messageset named %s, got %d", shortName, len(page.Results)))
	}
	return httpmodels.AdaptMessageSet(page.Results[0]), nil
}

func (repo *StageBasedMessagingRepository) GetSchedule(ctx context.Context,
	scheduleId int,
) (models.Schedule, error) {
	u := fmt.Sprintf("%s/api/v1/schedule/%d/", repo.stageBasedMessaging.Url(), scheduleId)

	var schedule httpmodels.HTTPSchedule
	if err := repo.getJson(ctx, u, &schedule); err != nil {
		return models.Schedule{}, errors.Wrap(err,
			fmt.Sprintf("could not get schedule %d", scheduleId))
	}
	return httpmodels.AdaptSchedule(schedule), nil
}

// getJson performs a GET with a small bounded retry. Only reads go through
// here, so re-issuing the request is always safe.
func (repo *StageBasedMessagingRepository) getJson(ctx context.Context, u string, out any) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			repo.setHeaders(req)

			resp, err := repo.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				err := errors.New(fmt.Sprintf(
					"stage-based messaging service returned status %d for %s", resp.StatusCode, u))
				if resp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}

			return json.NewDecoder(resp.Body).Decode(out)
		},
		retry.Attempts(nbRetriesIdempotentGet),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}

func (repo *StageBasedMessagingRepository) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if token := repo.stageBasedMessaging.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
}
