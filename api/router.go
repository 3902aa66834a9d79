package api

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/segmentio/analytics-go/v3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/freelancehub/agency-inbox/api/middleware"
	"github.com/freelancehub/agency-inbox/infra"
	"github.com/freelancehub/agency-inbox/utils"
)

func corsOption(ctx context.Context, conf Configuration) cors.Config {
	logger := utils.LoggerFromContext(ctx)
	allowedOrigins := []string{}

	parsedUrl, err := url.Parse(conf.AppUrl)
	switch {
	case conf.AppUrl == "":
	case err != nil:
		logger.Error("Failed to parse the app URL for CORS. Requests made from the browser from this url to the API will be rejected.",
			"url", conf.AppUrl)
	case !slices.Contains([]string{"http", "https"}, parsedUrl.Scheme):
		logger.Error("The app url does not contain a scheme (http or https), so it cannot be used for CORS.",
			"url", conf.AppUrl)
	default:
		u := url.URL{
			Scheme: parsedUrl.Scheme,
			Host:   parsedUrl.Host,
		}
		allowedOrigins = append(allowedOrigins, u.String())
	}

	if conf.Env == "development" {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://localhost:5173")
	}

	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet,
			http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch,
		},
		AllowHeaders:     []string{"Content-Type", utils.ActorIdHeader, "If-None-Match", "baggage", "sentry-trace"},
		ExposeHeaders:    []string{"ETag"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func InitRouterMiddlewares(
	ctx context.Context,
	conf Configuration,
	segmentClient analytics.Client,
	telemetryRessources infra.TelemetryRessources,
) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	useJsonFieldNames()

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	if corsConfig := corsOption(ctx, conf); len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	} else {
		logger.WarnContext(ctx, "No app URL configured, cross-origin requests from browsers will be rejected")
	}
	r.Use(middleware.NewLogging(logger,
		middleware.WithIgnorePath([]string{"/liveness", "/metrics"}),
		middleware.WithDefaultLevel(conf.RequestLoggingLevel)))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(utils.StoreActorIdInContextMiddleware())
	if segmentClient != nil {
		r.Use(utils.StoreSegmentClientInContextMiddleware(segmentClient))
	}
	r.Use(otelgin.Middleware(
		conf.AppName,
		otelgin.WithTracerProvider(telemetryRessources.TracerProvider),
		otelgin.WithPropagators(telemetryRessources.TextMapPropagator),
	))
	r.Use(utils.StoreOpenTelemetryTracerInContextMiddleware(telemetryRessources.Tracer))

	return r
}
