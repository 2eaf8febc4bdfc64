package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	registryclient "github.com/Apurer/go-petclinic-server/internal/clients/http/registry"
	registryadapter "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/external/registry"
	ownersmemory "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/memory"
	ownersobs "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/observability"
	ownerspostgres "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/persistence/postgres"
	ownersapp "github.com/Apurer/go-petclinic-server/internal/domains/owners/application"
	ownerports "github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	platformobservability "github.com/Apurer/go-petclinic-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-petclinic-server/internal/platform/postgres"
	owneractivities "github.com/Apurer/go-petclinic-server/internal/platform/temporal/activities/owners"
	ownerworkflows "github.com/Apurer/go-petclinic-server/internal/platform/temporal/workflows/owners"
)

func main() {
	ctx := context.Background()
	const serviceName = "petclinic-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	ownerRepo, cleanupRepo := buildOwnerRepository(ctx, logger)
	defer cleanupRepo()
	coreOwnerService := ownersapp.NewService(ownerRepo)
	ownerService := ownersobs.New(
		coreOwnerService,
		ownersobs.WithLogger(logger),
		ownersobs.WithTracer(instruments.Tracer("internal.owners.application")),
		ownersobs.WithMeter(instruments.Meter("internal.owners.application")),
	)
	ownerActivities := owneractivities.NewActivities(ownerService, ownerRepo, buildRegistryNotifier(logger))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, ownerworkflows.PetRegistrationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(ownerworkflows.PetRegistrationWorkflow, workflow.RegisterOptions{Name: ownerworkflows.PetRegistrationWorkflowName})
	w.RegisterActivityWithOptions(ownerActivities.RegisterPet, activity.RegisterOptions{Name: owneractivities.RegisterPetActivityName})
	w.RegisterActivityWithOptions(ownerActivities.NotifyPetRegistry, activity.RegisterOptions{Name: owneractivities.NotifyPetRegistryActivityName})

	logger.Info("worker listening", slog.String("taskQueue", ownerworkflows.PetRegistrationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOwnerRepository(ctx context.Context, logger *slog.Logger) (ownerports.Repository, func()) {
	dsn := os.Getenv("POSTGRES_DSN")
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory owner repository")
		return ownersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres (falling back to memory)", slog.String("error", err.Error()))
		return ownersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection (falling back to memory)", slog.String("error", err.Error()))
		return ownersmemory.NewRepository(), func() {}
	}
	logger.Info("worker owner repository configured with postgres")
	return ownerspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

// buildRegistryNotifier wires the national pet registry client when its base
// URL is configured. Without it the notify activity records a skip.
func buildRegistryNotifier(logger *slog.Logger) ownerports.RegistryNotifier {
	baseURL := strings.TrimSpace(os.Getenv("PET_REGISTRY_URL"))
	if baseURL == "" {
		logger.Warn("PET_REGISTRY_URL not set, registry notifications disabled")
		return nil
	}
	registry, err := registryclient.NewRegistryClient(baseURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		logger.Warn("invalid PET_REGISTRY_URL, registry notifications disabled", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("pet registry notifications enabled", slog.String("baseUrl", baseURL))
	return registryadapter.NewNotifier(registry)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
