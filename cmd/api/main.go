// Entry point for the attendance service: trigger API plus scheduler loop.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aryaman-sowilo/spine-attendance/internal/api"
	"github.com/aryaman-sowilo/spine-attendance/internal/assistant"
	"github.com/aryaman-sowilo/spine-attendance/internal/config"
	"github.com/aryaman-sowilo/spine-attendance/internal/core"
	"github.com/aryaman-sowilo/spine-attendance/internal/gaps"
	"github.com/aryaman-sowilo/spine-attendance/internal/ports/driver"
	"github.com/aryaman-sowilo/spine-attendance/internal/ports/messaging"
	"github.com/aryaman-sowilo/spine-attendance/internal/schedule"
	"github.com/aryaman-sowilo/spine-attendance/pkg/aws"
	"github.com/aryaman-sowilo/spine-attendance/pkg/logger"
	"github.com/aryaman-sowilo/spine-attendance/pkg/telemetry"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	// Configure structured logging
	logger.Setup(cfg.IsLocalDev)

	// Configure OpenTelemetry Tracing
	shutdownTracer, err := telemetry.InitTracer("spine-attendance-api")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	// Holiday calendar
	calendar, err := gaps.LoadCalendar(cfg.HolidayFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.HolidayFile).Msg("Error loading holiday calendar")
	}

	// AWS SDK Config
	awsCfg, err := aws.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	// Initialize dependencies
	sqsClient := sqs.NewFromConfig(awsCfg)
	producer := messaging.NewSQSProducer(sqsClient, cfg.NotifySQSQueueURL)
	drv := driver.NewHTTPDriver(cfg.DriverURL)
	scheduler := schedule.New(
		schedule.WithReminderLead(time.Duration(cfg.ReminderLeadMins) * time.Minute),
	)
	planner := schedule.NewPlanner()

	var composer assistant.Generator = assistant.Template{}
	if cfg.OpenAIAPIKey != "" {
		composer = assistant.NewOpenAI(cfg.OpenAIAPIKey)
	}

	coreService := core.NewReconcileService(drv, producer, scheduler, planner, composer, calendar,
		core.WithGapScanDays(cfg.GapScanDays),
		core.WithSwipeFetchLimit(cfg.SwipeFetchLimit),
	)

	// Scheduler loop runs alongside the server until shutdown.
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	go scheduler.Run(schedCtx, coreService.ExecuteJob)

	// Setup router and server
	router := api.NewRouter(coreService)

	// Middleware to inject logger with trace ID
	loggerMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.EnrichContextWithLogger(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	// Wrap the router with OpenTelemetry middleware to create spans for each request
	handler := otelhttp.NewHandler(loggerMiddleware(router), "api")

	serverAddr := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: handler,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Attendance service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopScheduler()

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
