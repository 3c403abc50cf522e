// Package service implements job board operations. Each operation checks the
// authorization policy, validates input, and then reads or writes the store,
// returning *errors.Error values whose kind maps to a transport status.
package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/platform/id"
	"github.com/louisbranch/jobboard/internal/platform/logging"
	platformotel "github.com/louisbranch/jobboard/internal/platform/otel"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/policy"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/louisbranch/jobboard/internal/services/jobboard/service"

// SessionIssuer issues signed session tokens for principals.
type SessionIssuer interface {
	Issue(principal identity.Principal) (identity.Session, error)
}

// Service runs job board operations against a store.
type Service struct {
	store       storage.Store
	sessions    SessionIssuer
	hasher      identity.PasswordHasher
	clock       func() time.Time
	idGenerator func() (string, error)
	logger      *zap.Logger
	tracer      trace.Tracer

	dummyOnce sync.Once
	dummyHash string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides record ID generation.
func WithIDGenerator(generator func() (string, error)) Option {
	return func(s *Service) {
		if generator != nil {
			s.idGenerator = generator
		}
	}
}

// WithLogger sets the logger used for internal failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPasswordHasher overrides the bcrypt hasher.
func WithPasswordHasher(hasher identity.PasswordHasher) Option {
	return func(s *Service) {
		s.hasher = hasher
	}
}

// New builds a Service over store. sessions may be nil when Login is unused.
func New(store storage.Store, sessions SessionIssuer, opts ...Option) *Service {
	s := &Service{
		store:       store,
		sessions:    sessions,
		hasher:      identity.NewPasswordHasher(0),
		clock:       time.Now,
		idGenerator: id.NewID,
		logger:      zap.NewNop(),
		tracer:      platformotel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Component(s.logger, "service")
	return s
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

// start opens a span for op. The returned func records the outcome; pass it
// a pointer to the operation's named error.
func (s *Service) start(ctx context.Context, op string, principal identity.Principal) (context.Context, func(*error)) {
	ctx, span := s.tracer.Start(ctx, "jobboard."+op, trace.WithAttributes(
		attribute.String("jobboard.operation", op),
		attribute.String("jobboard.role", principal.Role.String()),
	))
	return ctx, func(errp *error) {
		defer span.End()
		if errp == nil || *errp == nil {
			return
		}
		err := *errp
		kind := apperrors.KindOf(err)
		span.SetAttributes(
			attribute.String("jobboard.error_kind", string(kind)),
			attribute.String("jobboard.error_code", string(apperrors.CodeOf(err))),
		)
		if kind != apperrors.KindInternal {
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "internal error")
		logging.FromContext(ctx, s.logger).Error("operation failed",
			zap.String(logging.FieldOperation, op),
			zap.String("detail", apperrors.Detail(err)),
			zap.Error(err),
		)
		// Callers only see the generic internal message.
		if domainErr, ok := apperrors.As(err); !ok || domainErr.Code != apperrors.CodeInternal {
			*errp = apperrors.Internal(op, err)
		}
	}
}

// authorize evaluates the policy for a known target.
func authorize(principal identity.Principal, action policy.Action, resource policy.Resource, target policy.Target) error {
	return policy.Can(principal, action, resource, target).Err()
}

// precheck rejects principals that could not perform action on any target,
// so a missing record is only reported to callers allowed to ask.
func precheck(principal identity.Principal, action policy.Action, resource policy.Resource) error {
	decision := policy.Can(principal, action, resource, policy.Target{})
	if decision.Allowed || decision.ReasonCode == policy.ReasonDenyNotResourceOwner {
		return nil
	}
	return decision.Err()
}

// storageError maps a store failure to a typed error. notFound is the code
// used for storage.ErrNotFound.
func storageError(op string, err error, notFound apperrors.Code) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	var (
		conflict   *storage.ConflictError
		reference  *storage.ReferenceError
		dependency *storage.DependencyError
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.Internal(op, err)
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.Wrap(notFound, op+": not found", err)
	case errors.Is(err, storage.ErrJobNotPublished):
		return apperrors.Wrap(apperrors.CodeJobNotPublished, op+": job is not published", err)
	case errors.As(err, &conflict):
		return conflictError(op, conflict, err)
	case errors.As(err, &reference):
		return apperrors.Wrap(referenceCode(reference.Entity), op+": "+reference.Error(), err)
	case errors.As(err, &dependency):
		return dependencyError(op, dependency, err)
	case errors.Is(err, storage.ErrAlreadyExists):
		return apperrors.Wrap(apperrors.CodeConflict, op+": already exists", err)
	default:
		return apperrors.Internal(op, err)
	}
}

func conflictError(op string, conflict *storage.ConflictError, err error) error {
	switch conflict.Field {
	case storage.FieldCompanyName:
		return apperrors.Wrap(apperrors.CodeCompanyNameTaken, op+": company name taken", err)
	case storage.FieldUserEmail:
		return apperrors.Wrap(apperrors.CodeUserEmailTaken, op+": email taken", err)
	case storage.FieldApplication:
		return apperrors.Wrap(apperrors.CodeApplicationDuplicate, op+": duplicate application", err)
	default:
		return apperrors.Wrap(apperrors.CodeConflict, op+": "+conflict.Error(), err)
	}
}

func referenceCode(entity string) apperrors.Code {
	switch entity {
	case storage.EntityCompany:
		return apperrors.CodeCompanyNotFound
	case storage.EntityUser:
		return apperrors.CodeUserNotFound
	case storage.EntityJob:
		return apperrors.CodeJobNotFound
	case storage.EntityApplication:
		return apperrors.CodeApplicationNotFound
	default:
		return apperrors.CodeNotFound
	}
}

func dependencyError(op string, dependency *storage.DependencyError, err error) error {
	metadata := map[string]string{
		"Jobs":  strconv.Itoa(dependency.Jobs),
		"Users": strconv.Itoa(dependency.Users),
	}
	code := apperrors.CodeCompanyHasDependents
	if dependency.Entity == storage.EntityUser {
		code = apperrors.CodeUserHasJobs
	}
	return apperrors.WrapWithMetadata(code, op+": "+dependency.Error(), metadata, err)
}
