package usecases

import (
	"github.com/momconnect/hub/repositories"
	"github.com/momconnect/hub/usecases/change_pipeline"
	"github.com/momconnect/hub/usecases/executor_factory"
)

type Usecases struct {
	Repositories repositories.Repositories
	apiVersion   string
}

type Option func(*Usecases)

func WithApiVersion(apiVersion string) Option {
	return func(u *Usecases) {
		u.apiVersion = apiVersion
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	usecases := Usecases{
		Repositories: repositories,
	}
	for _, opt := range opts {
		opt(&usecases)
	}
	return usecases
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewChangePipeline() *change_pipeline.ChangePipeline {
	return change_pipeline.NewChangePipeline(
		usecases.NewExecutorFactory(),
		usecases.Repositories.ChangeRepository,
		usecases.Repositories.RegistrationRepository,
		usecases.Repositories.SubscriptionRequestRepository,
		usecases.Repositories.SubscriptionRepository,
		usecases.Repositories.IdentityRepository,
	)
}

func (usecases *Usecases) NewChangeUsecase() ChangeUsecase {
	return ChangeUsecase{
		executorFactory:     usecases.NewExecutorFactory(),
		transactionFactory:  usecases.NewTransactionFactory(),
		changeRepository:    usecases.Repositories.ChangeRepository,
		sourceRepository:    usecases.Repositories.SourceRepository,
		taskQueueRepository: usecases.Repositories.TaskQueueRepository,
	}
}

func (usecases *Usecases) NewVersionUsecase() VersionUsecase {
	return VersionUsecase{
		ApiVersion: usecases.apiVersion,
	}
}
