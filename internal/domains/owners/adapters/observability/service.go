package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ownertypes "github.com/Apurer/go-petclinic-server/internal/domains/owners/application/types"
	"github.com/Apurer/go-petclinic-server/internal/domains/owners/ports"
	"github.com/Apurer/go-petclinic-server/internal/shared/forms"
)

const tracerName = "github.com/Apurer/go-petclinic-server/internal/domains/owners/adapters/observability/service"

// Service decorates an owners application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// GetOwner loads a single owner aggregate.
func (s *Service) GetOwner(ctx context.Context, ref ownertypes.OwnerRef) (*ownertypes.OwnerProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOwner", attribute.Int64("owner.id", ref.OwnerID))
	defer span.End()

	s.logInfo(ctx, "loading owner", slog.Int64("owner.id", ref.OwnerID))
	result, err := s.inner.GetOwner(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load owner", slog.Int64("owner.id", ref.OwnerID))
	}
	if result != nil && result.Entity != nil {
		s.logInfo(ctx, "owner loaded", slog.Int64("owner.id", result.Entity.ID), slog.Int("pets", len(result.Entity.Pets)))
	}
	return result, nil
}

// FindOwners pages through owners matching a last-name prefix.
func (s *Service) FindOwners(ctx context.Context, query ownertypes.FindOwnersQuery) (*ownertypes.OwnerSearchResult, error) {
	ctx, span := s.startSpan(ctx, "Service.FindOwners",
		attribute.String("owner.last_name", query.LastName),
		attribute.Int("owner.page", query.Page),
	)
	defer span.End()

	s.logInfo(ctx, "finding owners", slog.String("last_name", query.LastName), slog.Int("page", query.Page))
	result, err := s.inner.FindOwners(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find owners", slog.String("last_name", query.LastName))
	}
	span.SetAttributes(attribute.Int("owner.result.count", len(result.Owners)))
	s.logInfo(ctx, "found owners", slog.Int("count", len(result.Owners)), slog.Int("total", result.TotalElements))
	return result, nil
}

// InitOwnerUpdateForm loads an owner into the owner form.
func (s *Service) InitOwnerUpdateForm(ctx context.Context, ref ownertypes.OwnerRef) (*ownertypes.OwnerFormView, error) {
	ctx, span := s.startSpan(ctx, "Service.InitOwnerUpdateForm", attribute.Int64("owner.id", ref.OwnerID))
	defer span.End()

	s.logInfo(ctx, "loading owner form", slog.Int64("owner.id", ref.OwnerID))
	result, err := s.inner.InitOwnerUpdateForm(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load owner form", slog.Int64("owner.id", ref.OwnerID))
	}
	return result, nil
}

// SubmitOwnerForm runs the owner form pipeline.
func (s *Service) SubmitOwnerForm(ctx context.Context, submission ownertypes.OwnerFormSubmission) (*ownertypes.OwnerFormDecision, error) {
	ctx, span := s.startSpan(ctx, "Service.SubmitOwnerForm", attribute.Int64("owner.id", submission.OwnerID))
	defer span.End()

	s.logInfo(ctx, "submitting owner form", slog.Int64("owner.id", submission.OwnerID))
	result, err := s.inner.SubmitOwnerForm(ctx, submission)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit owner form", slog.Int64("owner.id", submission.OwnerID))
	}
	switch {
	case result == nil:
	case result.Saved:
		if submission.OwnerID == 0 {
			s.metrics.recordOwnerCreated(ctx)
		} else {
			s.metrics.recordOwnerUpdated(ctx)
		}
		s.logInfo(ctx, "owner form saved", slog.Int64("owner.id", result.OwnerID))
	case result.Rejected != nil:
		s.recordRejection(ctx, span, result.Rejected.Errors)
	}
	return result, nil
}

// InitPetForm prepares a blank pet form for an owner.
func (s *Service) InitPetForm(ctx context.Context, ref ownertypes.OwnerRef) (*ownertypes.PetFormView, error) {
	ctx, span := s.startSpan(ctx, "Service.InitPetForm", attribute.Int64("owner.id", ref.OwnerID))
	defer span.End()

	s.logInfo(ctx, "loading pet form", slog.Int64("owner.id", ref.OwnerID))
	result, err := s.inner.InitPetForm(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet form", slog.Int64("owner.id", ref.OwnerID))
	}
	return result, nil
}

// InitPetUpdateForm loads an existing pet into the pet form.
func (s *Service) InitPetUpdateForm(ctx context.Context, ref ownertypes.PetRef) (*ownertypes.PetFormView, error) {
	ctx, span := s.startSpan(ctx, "Service.InitPetUpdateForm",
		attribute.Int64("owner.id", ref.OwnerID),
		attribute.Int64("pet.id", ref.PetID),
	)
	defer span.End()

	s.logInfo(ctx, "loading pet form", slog.Int64("owner.id", ref.OwnerID), slog.Int64("pet.id", ref.PetID))
	result, err := s.inner.InitPetUpdateForm(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet form", slog.Int64("owner.id", ref.OwnerID), slog.Int64("pet.id", ref.PetID))
	}
	return result, nil
}

// SubmitPetForm runs the pet form pipeline for both creation and update.
func (s *Service) SubmitPetForm(ctx context.Context, submission ownertypes.PetFormSubmission) (*ownertypes.PetFormDecision, error) {
	ctx, span := s.startSpan(ctx, "Service.SubmitPetForm",
		attribute.Int64("owner.id", submission.OwnerID),
		attribute.Int64("pet.id", submission.PetID),
	)
	defer span.End()

	s.logInfo(ctx, "submitting pet form", slog.Int64("owner.id", submission.OwnerID), slog.Int64("pet.id", submission.PetID))
	result, err := s.inner.SubmitPetForm(ctx, submission)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit pet form", slog.Int64("owner.id", submission.OwnerID))
	}
	switch {
	case result == nil:
	case result.Saved:
		if submission.PetID == 0 {
			s.metrics.recordPetRegistered(ctx)
		} else {
			s.metrics.recordPetUpdated(ctx)
		}
		s.logInfo(ctx, "pet form saved", slog.Int64("owner.id", result.OwnerID), slog.Int64("pet.id", result.PetID))
	case result.Rejected != nil:
		s.recordRejection(ctx, span, result.Rejected.Errors)
	}
	return result, nil
}

// InitVisitForm prepares a blank visit form for a pet.
func (s *Service) InitVisitForm(ctx context.Context, ref ownertypes.PetRef) (*ownertypes.VisitFormView, error) {
	ctx, span := s.startSpan(ctx, "Service.InitVisitForm",
		attribute.Int64("owner.id", ref.OwnerID),
		attribute.Int64("pet.id", ref.PetID),
	)
	defer span.End()

	s.logInfo(ctx, "loading visit form", slog.Int64("owner.id", ref.OwnerID), slog.Int64("pet.id", ref.PetID))
	result, err := s.inner.InitVisitForm(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load visit form", slog.Int64("owner.id", ref.OwnerID), slog.Int64("pet.id", ref.PetID))
	}
	return result, nil
}

// SubmitVisitForm validates and records a visit.
func (s *Service) SubmitVisitForm(ctx context.Context, submission ownertypes.VisitFormSubmission) (*ownertypes.VisitFormDecision, error) {
	ctx, span := s.startSpan(ctx, "Service.SubmitVisitForm",
		attribute.Int64("owner.id", submission.OwnerID),
		attribute.Int64("pet.id", submission.PetID),
	)
	defer span.End()

	s.logInfo(ctx, "submitting visit form", slog.Int64("owner.id", submission.OwnerID), slog.Int64("pet.id", submission.PetID))
	result, err := s.inner.SubmitVisitForm(ctx, submission)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit visit form", slog.Int64("owner.id", submission.OwnerID))
	}
	switch {
	case result == nil:
	case result.Saved:
		s.metrics.recordVisitRecorded(ctx)
		s.logInfo(ctx, "visit form saved", slog.Int64("owner.id", result.OwnerID), slog.Int64("pet.id", submission.PetID))
	case result.Rejected != nil:
		s.recordRejection(ctx, span, result.Rejected.Errors)
	}
	return result, nil
}

// recordRejection counts every rejected field and tags the span so rejected
// submissions stay visible without being errors.
func (s *Service) recordRejection(ctx context.Context, span trace.Span, errs *forms.Result) {
	if errs == nil {
		return
	}
	total := 0
	for object, fields := range errs.ByObject() {
		for _, fieldErr := range fields {
			total++
			s.metrics.recordFormRejected(ctx, object, fieldErr.Field, fieldErr.Code)
		}
	}
	span.SetAttributes(attribute.Int("form.rejected_fields", total))
	s.logInfo(ctx, "form submission rejected", slog.Int("rejected_fields", total))
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ownersCreated  metric.Int64Counter
	ownersUpdated  metric.Int64Counter
	petsRegistered metric.Int64Counter
	petsUpdated    metric.Int64Counter
	visitsRecorded metric.Int64Counter
	formsRejected  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ownersCreated, _ := m.Int64Counter("owners.service.created", metric.WithDescription("Number of owners created"))
	ownersUpdated, _ := m.Int64Counter("owners.service.updated", metric.WithDescription("Number of owners updated"))
	petsRegistered, _ := m.Int64Counter("owners.service.pets_registered", metric.WithDescription("Number of pets registered"))
	petsUpdated, _ := m.Int64Counter("owners.service.pets_updated", metric.WithDescription("Number of pets updated"))
	visitsRecorded, _ := m.Int64Counter("owners.service.visits_recorded", metric.WithDescription("Number of visits recorded"))
	formsRejected, _ := m.Int64Counter("owners.service.forms_rejected", metric.WithDescription("Number of rejected form fields"))
	return serviceMetrics{
		ownersCreated:  ownersCreated,
		ownersUpdated:  ownersUpdated,
		petsRegistered: petsRegistered,
		petsUpdated:    petsUpdated,
		visitsRecorded: visitsRecorded,
		formsRejected:  formsRejected,
	}
}

func (m serviceMetrics) recordOwnerCreated(ctx context.Context) {
	addCounter(ctx, m.ownersCreated, 1)
}

func (m serviceMetrics) recordOwnerUpdated(ctx context.Context) {
	addCounter(ctx, m.ownersUpdated, 1)
}

func (m serviceMetrics) recordPetRegistered(ctx context.Context) {
	addCounter(ctx, m.petsRegistered, 1)
}

func (m serviceMetrics) recordPetUpdated(ctx context.Context) {
	addCounter(ctx, m.petsUpdated, 1)
}

func (m serviceMetrics) recordVisitRecorded(ctx context.Context) {
	addCounter(ctx, m.visitsRecorded, 1)
}

func (m serviceMetrics) recordFormRejected(ctx context.Context, object, field, code string) {
	addCounter(ctx, m.formsRejected, 1,
		attribute.String("form.object", object),
		attribute.String("form.field", field),
		attribute.String("form.code", code),
	)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
