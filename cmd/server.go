package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/momconnect/hub/api"
	"github.com/momconnect/hub/infra"
	"github.com/momconnect/hub/repositories"
	"github.com/momconnect/hub/usecases"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const apiVersion = "v1"

func RunServer() error {
	// This is where we read the environment variables and set up the configuration for the application.
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "momconnect-hub",
		Port:                utils.GetRequiredEnv[string]("PORT"),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 5)) * time.Second,
	}
	pgConfig := infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           "hub",
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.MAX_CONNECTIONS),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
	}
	serverConfig := struct {
		loggingFormat            string
		sentryDsn                string
		stageBasedMessagingUrl   string
		stageBasedMessagingToken string
		identityStoreUrl         string
		identityStoreToken       string
	}{
		loggingFormat:            utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:                utils.GetEnv("SENTRY_DSN", ""),
		stageBasedMessagingUrl:   utils.GetRequiredEnv[string]("STAGE_BASED_MESSAGING_URL"),
		stageBasedMessagingToken: utils.GetRequiredEnv[string]("STAGE_BASED_MESSAGING_TOKEN"),
		identityStoreUrl:         utils.GetRequiredEnv[string]("IDENTITY_STORE_URL"),
		identityStoreToken:       utils.GetRequiredEnv[string]("IDENTITY_STORE_TOKEN"),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, apiVersion)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	// Insert-only river client: the api only enqueues jobs, the worker entrypoint runs them.
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repositories := repositories.NewRepositories(
		repositories.NewExecutorGetter(pool),
		infra.InitializeStageBasedMessaging(
			serverConfig.stageBasedMessagingUrl,
			serverConfig.stageBasedMessagingToken,
		),
		infra.InitializeIdentityStore(
			serverConfig.identityStoreUrl,
			serverConfig.identityStoreToken,
		),
		repositories.WithRiverClient(riverClient),
	)

	uc := usecases.NewUsecases(repositories,
		usecases.WithApiVersion(apiVersion),
	)

	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(
			ctx,
			errors.Wrap(err, "Error while shutting down the server"),
		)
		return err
	}

	return nil
}
