// Package inventory implements the medicine cabinet business logic: turning
// chat messages into stock mutations, searches, listings and reports, with
// fuzzy name resolution and stock/expiry warnings.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/medikeep/cabinet-backend/internal/config"
	"github.com/medikeep/cabinet-backend/internal/domain"
	"github.com/medikeep/cabinet-backend/internal/fuzzy"
	"github.com/medikeep/cabinet-backend/internal/parser"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type medicineRepo interface {
	LockGroup(ctx context.Context, groupID string) error
	GetByID(ctx context.Context, groupID string, id uuid.UUID) (domain.Medicine, error)
	ListByGroup(ctx context.Context, groupID string) ([]domain.Medicine, error)
	ListNames(ctx context.Context, groupID string) ([]domain.NameRef, error)
	Insert(ctx context.Context, draft domain.MedicineDraft) (domain.Medicine, error)
	Increment(ctx context.Context, groupID string, id uuid.UUID, qty int, refresh domain.RefreshFields) (domain.Medicine, error)
	AdjustQuantity(ctx context.Context, groupID string, id uuid.UUID, delta int) (domain.Medicine, error)
	DeleteByID(ctx context.Context, groupID string, id uuid.UUID) error
}

type activityRepo interface {
	Append(ctx context.Context, entry domain.Activity) error
	ListByMedicine(ctx context.Context, groupID string, medicineID uuid.UUID, limit int) ([]domain.Activity, error)
	Stats(ctx context.Context, groupID string, since time.Time) (domain.StatsReport, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type nameResolver interface {
	Resolve(query string, candidates []domain.NameRef) (fuzzy.Match, bool)
}

type warningEvaluator interface {
	Evaluate(m domain.Medicine, now time.Time) []domain.WarningTag
}

type messageParser interface {
	Parse(text string) parser.Command
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the cabinet inventory business logic.
type Service struct {
	log       *slog.Logger
	medicines medicineRepo
	activity  activityRepo
	tx        txManager
	resolver  nameResolver
	alerts    warningEvaluator
	parser    messageParser
	cfg       config.CabinetConfig
}

// NewService creates a new inventory service.
func NewService(
	logger *slog.Logger,
	medicines medicineRepo,
	activity activityRepo,
	tx txManager,
	resolver nameResolver,
	alerts warningEvaluator,
	parser messageParser,
	cfg config.CabinetConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "inventory"),
		medicines: medicines,
		activity:  activity,
		tx:        tx,
		resolver:  resolver,
		alerts:    alerts,
		parser:    parser,
		cfg:       cfg,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// storeCtx bounds a store round-trip with the configured timeout.
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}

// mapStoreErr translates a store timeout into ErrStoreUnavailable so callers
// see a retryable failure instead of a bare context error.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("store timeout: %w", domain.ErrStoreUnavailable)
	}
	return err
}
