package repositories

import (
	"net/http"

	"github.com/momconnect/hub/infra"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

type options struct {
	riverClient *river.Client[pgx.Tx]
	httpClient  *http.Client
}

type Option func(*options)

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func WithHttpClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

type Repositories struct {
	ExecutorGetter                ExecutorGetter
	ChangeRepository              *ChangeRepositoryPostgresql
	RegistrationRepository        *RegistrationRepositoryPostgresql
	SourceRepository              *SourceRepositoryPostgresql
	SubscriptionRequestRepository *SubscriptionRequestRepositoryPostgresql
	TaskQueueRepository           TaskQueueRepository
	SubscriptionRepository        SubscriptionRepository
	IdentityRepository            IdentityRepository
}

func NewRepositories(
	executorGetter ExecutorGetter,
	stageBasedMessaging infra.StageBasedMessaging,
	identityStore infra.IdentityStore,
	opts ...Option,
) Repositories {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var taskQueueRepository TaskQueueRepository
	if o.riverClient != nil {
		taskQueueRepository = NewTaskQueueRepository(o.riverClient)
	}

	return Repositories{
		ExecutorGetter:                executorGetter,
		ChangeRepository:              &ChangeRepositoryPostgresql{},
		RegistrationRepository:        &RegistrationRepositoryPostgresql{},
		SourceRepository:              &SourceRepositoryPostgresql{},
		SubscriptionRequestRepository: &SubscriptionRequestRepositoryPostgresql{},
		TaskQueueRepository:           taskQueueRepository,
		SubscriptionRepository:        NewStageBasedMessagingRepository(stageBasedMessaging, o.httpClient),
		IdentityRepository:            NewIdentityStoreRepository(identityStore, o.httpClient),
	}
}
