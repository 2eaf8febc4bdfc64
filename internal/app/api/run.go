package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	petclinicserver "github.com/Apurer/go-petclinic-server/go"

	ownersmemory "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/memory"
	ownersobs "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/observability"
	ownerspostgres "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/persistence/postgres"
	ownersworkflows "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/workflows"
	ownersapp "github.com/Apurer/go-petclinic-server/internal/domains/owners/application"
	ownerports "github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	vetsmemory "github.com/Apurer/go-petclinic-server/internal/domains/vets/adapters/memory"
	vetspostgres "github.com/Apurer/go-petclinic-server/internal/domains/vets/adapters/persistence/postgres"
	vetsapp "github.com/Apurer/go-petclinic-server/internal/domains/vets/application"
	vetports "github.com/Apurer/go-petclinic-server/internal/domains/vets/ports"
	platformobservability "github.com/Apurer/go-petclinic-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-petclinic-server/internal/platform/postgres"
)

// Run boots the PetClinic HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "petclinic-api"
	cfg := LoadConfig()
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectClinicDatabase(ctx, cfg, logger)
	defer cleanupDB()

	ownerRepo := buildOwnerRepository(db, logger)
	coreOwnerService := ownersapp.NewService(ownerRepo)
	ownerService := ownersobs.New(
		coreOwnerService,
		ownersobs.WithLogger(logger),
		ownersobs.WithTracer(instruments.Tracer("internal.owners.application")),
		ownersobs.WithMeter(instruments.Meter("internal.owners.application")),
	)
	var petWorkflows ownerports.WorkflowOrchestrator = ownersworkflows.NewInlinePetWorkflows(ownerService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, registering pets inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		petWorkflows = ownersworkflows.NewTemporalPetWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	vetService := vetsapp.NewService(buildVetRepository(db, logger))

	handlers := petclinicserver.ApiHandleFunctions{
		WelcomeAPI: petclinicserver.NewWelcomeAPI(),
		OwnerAPI:   petclinicserver.NewOwnerAPI(ownerService),
		PetAPI:     petclinicserver.NewPetAPI(ownerService, petWorkflows),
		VisitAPI:   petclinicserver.NewVisitAPI(ownerService),
		VetAPI:     petclinicserver.NewVetAPI(vetService),
	}

	router := petclinicserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("PetClinic API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("PetClinic API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// connectClinicDatabase opens the shared Postgres handle. A nil handle means
// the process runs on in-memory repositories.
func connectClinicDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("clinic repositories configured with postgres")
	return db, func() { _ = sqlDB.Close() }
}

func buildOwnerRepository(db *gorm.DB, logger *slog.Logger) ownerports.Repository {
	if db == nil {
		return ownersmemory.NewRepository()
	}
	logger.Info("owner repository configured with postgres")
	return ownerspostgres.NewRepository(db)
}

func buildVetRepository(db *gorm.DB, logger *slog.Logger) vetports.Repository {
	if db == nil {
		return vetsmemory.NewRepository()
	}
	logger.Info("vet repository configured with postgres")
	return vetspostgres.NewRepository(db)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
