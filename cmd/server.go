package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/freelancehub/agency-inbox/api"
	"github.com/freelancehub/agency-inbox/infra"
	"github.com/freelancehub/agency-inbox/repositories"
	"github.com/freelancehub/agency-inbox/usecases"
	"github.com/freelancehub/agency-inbox/utils"
)

func RunServer(config CompiledConfig) error {
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "agency-inbox",
		AppVersion:          config.Version,
		Port:                utils.GetRequiredEnv[string]("PORT"),
		AppUrl:              utils.GetEnv("APP_URL", ""),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "info"),
		SegmentWriteKey:     utils.GetEnv("SEGMENT_WRITE_KEY", config.SegmentWriteKey),
		DefaultTimeout:      utils.GetDurationEnv("DEFAULT_TIMEOUT_SECOND", 10*time.Second),
	}
	serverConfig := ServerConfig{
		loggingFormat:      utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:          utils.GetEnv("SENTRY_DSN", ""),
		enableTracing:      utils.GetEnv("ENABLE_TRACING", false),
		collaboratorApiUrl: utils.GetRequiredEnv[string]("COLLABORATOR_API_URL"),
		collaboratorApiKey: utils.GetEnv("COLLABORATOR_API_KEY", ""),
		collaboratorRate:   utils.GetEnv("COLLABORATOR_RATE_LIMIT", 0),
		inboxCacheMaxKeys:  utils.GetEnv("INBOX_CACHE_MAX_KEYS", utils.InboxWorkspaceCacheMaxKeys()),
	}
	collaboratorConfig := infra.CollaboratorConfig{
		ApiUrl:    serverConfig.collaboratorApiUrl,
		ApiKey:    serverConfig.collaboratorApiKey,
		RateLimit: serverConfig.collaboratorRate,
		Timeout:   utils.GetDurationEnv("COLLABORATOR_TIMEOUT_SECOND", 10*time.Second),
	}
	inboxCacheTTL := utils.GetDurationEnv("INBOX_CACHE_TTL_SECOND", 45*time.Second)

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := serverConfig.Validate(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, apiConfig.AppVersion)
	defer sentry.Flush(3 * time.Second)

	telemetryRessources, err := infra.InitTelemetry(ctx, infra.TelemetryConfiguration{
		ApplicationName: apiConfig.AppName,
		Enabled:         serverConfig.enableTracing,
	}, apiConfig.AppVersion)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		telemetryRessources = infra.NoopTelemetry()
	}

	repositories := repositories.NewRepositories(collaboratorConfig)
	uc := usecases.NewUsecases(repositories,
		usecases.WithAppName(apiConfig.AppName),
		usecases.WithApiVersion(apiConfig.AppVersion),
		usecases.WithInboxCacheTTL(inboxCacheTTL),
		usecases.WithInboxCacheMaxKeys(serverConfig.inboxCacheMaxKeys),
	)

	deps := api.InitDependencies(apiConfig)
	router := api.InitRouterMiddlewares(ctx, apiConfig, deps.SegmentClient, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server",
			slog.String("port", apiConfig.Port),
			slog.String("version", apiConfig.AppVersion),
			slog.String("collaborator", collaboratorConfig.ApiUrl))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deps.Close()
	if err := telemetryRessources.Shutdown(shutdownCtx); err != nil {
		logger.WarnContext(ctx, "could not flush traces", slog.String("error", err.Error()))
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while shutting down the server"))
		return err
	}
	return nil
}
