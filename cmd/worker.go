package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momconnect/hub/infra"
	"github.com/momconnect/hub/jobs"
	"github.com/momconnect/hub/repositories"
	"github.com/momconnect/hub/usecases"
	"github.com/momconnect/hub/usecases/change_pipeline"
	"github.com/momconnect/hub/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
)

func RunTaskQueue() error {
	// This is where we read the environment variables and set up the configuration for the application.
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
	workerConfig := struct {
		env                      string
		loggingFormat            string
		sentryDsn                string
		maxWorkers               int
		probePort                string
		stageBasedMessagingUrl   string
		stageBasedMessagingToken string
		identityStoreUrl         string
		identityStoreToken       string
	}{
		env:                      utils.GetEnv("ENV", "development"),
		loggingFormat:            utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:                utils.GetEnv("SENTRY_DSN", ""),
		maxWorkers:               utils.GetEnv("CHANGES_QUEUE_MAX_WORKERS", 10),
		probePort:                utils.GetEnv("PROBE_PORT", ""),
		stageBasedMessagingUrl:   utils.GetRequiredEnv[string]("STAGE_BASED_MESSAGING_URL"),
		stageBasedMessagingToken: utils.GetRequiredEnv[string]("STAGE_BASED_MESSAGING_TOKEN"),
		identityStoreUrl:         utils.GetRequiredEnv[string]("IDENTITY_STORE_URL"),
		identityStoreToken:       utils.GetRequiredEnv[string]("IDENTITY_STORE_TOKEN"),
	}

	logger := utils.NewLogger(workerConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(workerConfig.sentryDsn, workerConfig.env, apiVersion)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	// First, create an insert-only client to pass to the repos. Later we create another
	// client with the queue configuration, but we need working repos first. It's a bit
	// awkward but it's a consequence of the fact that river uses the same client for
	// job insertion and job running.
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repos := repositories.NewRepositories(
		repositories.NewExecutorGetter(pool),
		infra.InitializeStageBasedMessaging(
			workerConfig.stageBasedMessagingUrl,
			workerConfig.stageBasedMessagingToken,
		),
		infra.InitializeIdentityStore(
			workerConfig.identityStoreUrl,
			workerConfig.identityStoreToken,
		),
		repositories.WithRiverClient(riverClient),
	)

	workers := river.NewWorkers()
	riverClient, err = river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval: 100 * time.Millisecond,
		Queues: map[string]river.QueueConfig{
			repositories.ChangesQueue: {MaxWorkers: workerConfig.maxWorkers},
		},

		// Must be larger than the time it takes to process a job. Increase it if we want to use longer-lived jobs.
		RescueStuckJobsAfter: 1 * time.Minute,
		WorkerMiddleware: []rivertype.WorkerMiddleware{
			jobs.NewSentryMiddleware(),
			jobs.NewLoggerMiddleware(logger),
			jobs.NewRecovererMiddleware(),
		},
		Workers: workers,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	uc := usecases.NewUsecases(repos,
		usecases.WithApiVersion(apiVersion),
	)
	river.AddWorker(workers, change_pipeline.NewValidateImplementWorker(uc.NewChangePipeline()))

	if err := riverClient.Start(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	// run a non-blocking basic http server to respond to orchestrator http probes
	if workerConfig.probePort != "" {
		go func() {
			http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			})
			if err := http.ListenAndServe(":"+workerConfig.probePort, nil); err != nil {
				utils.LogAndReportSentryError(ctx, err)
			}
		}()
	}

	// Teardown sequence
	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "River client stopped")

	return nil
}

// This stop goroutine waits for SIGINT/SIGTERM and when received, tries to stop
// gracefully by allowing a chance for jobs to finish. But if that isn't
// working, a second SIGINT/SIGTERM will tell it to terminate with prejudice and
// it'll issue a hard stop that cancels the context of all active jobs. In
// case that doesn't work, a third SIGINT/SIGTERM ignores River's stop procedure
// completely and exits uncleanly.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 5*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop (cancel everything)")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop (cancel everything)")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	// As long as all jobs respect context cancellation, StopAndCancel will
	// always work. However, in the case of a bug where a job blocks despite
	// being cancelled, it may be necessary to either ignore River's stop
	// result (what's shown here) or have a supervisor kill the process.
	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; ignoring stop procedure and exiting unsafely")
	} else if err != nil {
		panic(err)
	}
	// hard stop succeeded
}
