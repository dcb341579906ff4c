package repositories

import (
	"context"

	"github.com/momconnect/hub/models"
	"github.com/momconnect/hub/repositories/dbmodels"
)

type SubscriptionRequestRepository interface {
	CreateSubscriptionRequest(ctx context.Context, exec Executor,
		input models.CreateSubscriptionRequestInput) error
	ListSubscriptionRequests(ctx context.Context, exec Executor,
		registrantId string) ([]models.SubscriptionRequest, error)
}

type SubscriptionRequestRepositoryPostgresql struct{}

// CreateSubscriptionRequest inserts a new subscription request. The id is
// chosen by the caller, so a retried applier writing the same id is a no-op
// rather than a duplicate request.
func (repo *SubscriptionRequestRepositoryPostgresql) CreateSubscriptionRequest(ctx context.Context,
	exec Executor, input models.CreateSubscriptionRequestInput,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().Insert(dbmodels.TABLE_SUBSCRIPTION_REQUESTS).
			Columns(
				"id",
				"registrant_id",
				"messageset",
				"next_sequence_number",
				"lang",
				"schedule",
			).
			Values(
				input.Id,
				input.RegistrantId,
				input.Messageset,
				input.NextSequenceNumber,
				input.Lang,
				input.Schedule,
			).
			Suffix("ON CONFLICT (id) DO NOTHING"),
	)
}

func (repo *SubscriptionRequestRepositoryPostgresql) ListSubscriptionRequests(ctx context.Context,
	exec Executor, registrantId string,
) ([]models.SubscriptionRequest, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectSubscriptionRequestColumns...).
			From(dbmodels.TABLE_SUBSCRIPTION_REQUESTS).
			Where("registrant_id = ?", registrantId).
			OrderBy("created_at"),
		dbmodels.AdaptSubscriptionRequest,
	)
}
