package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/medikeep/cabinet-backend/internal/domain"
	"github.com/medikeep/cabinet-backend/internal/parser"
)

// HandleMessage runs the full chat pipeline for one message: classify,
// normalize, dispatch to the matching operation, and fold the outcome into
// a structured Result. It never returns an error; failures are encoded in
// the Result so the transport can always answer the user.
func (s *Service) HandleMessage(ctx context.Context, in MessageInput) Result {
	if err := in.Validate(); err != nil {
		return errorResult(domain.IntentUnknown, err)
	}

	cmd := s.parser.Parse(in.Text)
	if cmd.Intent == domain.IntentUnknown {
		return Result{
			Status: domain.StatusNeedsClarification,
			Intent: domain.IntentUnknown,
		}
	}

	fields, err := parser.NormalizeFields(cmd)
	if err != nil {
		return errorResult(cmd.Intent, err)
	}

	now := time.Now().UTC()

	switch cmd.Intent {
	case domain.IntentAdd:
		med, err := s.Add(ctx, AddInput{
			GroupID:  in.GroupID,
			Actor:    in.Actor,
			Name:     fields.Name,
			Quantity: *fields.Quantity,
			Unit:     fields.Unit,
			Expiry:   fields.Expiry,
			Location: fields.Location,
		})
		if err != nil {
			return s.failed(ctx, cmd.Intent, err)
		}
		return successResult(cmd.Intent, s.view(med, now))

	case domain.IntentUse:
		med, err := s.Consume(ctx, ConsumeInput{
			GroupID:  in.GroupID,
			Actor:    in.Actor,
			Name:     fields.Name,
			Quantity: *fields.Quantity,
		})
		if err != nil {
			return s.failed(ctx, cmd.Intent, err)
		}
		return successResult(cmd.Intent, s.view(med, now))

	case domain.IntentSearch:
		med, confidence, err := s.Search(ctx, SearchInput{
			GroupID: in.GroupID,
			Actor:   in.Actor,
			Name:    fields.Name,
		})
		if err != nil {
			return s.failed(ctx, cmd.Intent, err)
		}
		mv := s.view(med, now)
		mv.Confidence = confidence
		return successResult(cmd.Intent, mv)

	case domain.IntentListAll:
		meds, err := s.ListAll(ctx, in.GroupID)
		if err != nil {
			return s.failed(ctx, cmd.Intent, err)
		}
		views := make([]MedicineView, 0, len(meds))
		var warnings []domain.WarningTag
		for _, m := range meds {
			mv := s.view(m, now)
			views = append(views, mv)
			warnings = append(warnings, mv.Warnings...)
		}
		return Result{
			Status:   domain.StatusSuccess,
			Intent:   cmd.Intent,
			Cabinet:  views,
			Warnings: warnings,
		}
	}

	return Result{
		Status: domain.StatusNeedsClarification,
		Intent: domain.IntentUnknown,
	}
}

// failed logs non-user errors before folding them into the result. User
// errors (not found, insufficient stock, validation) are expected traffic
// and stay quiet.
func (s *Service) failed(ctx context.Context, intent domain.Intent, err error) Result {
	res := errorResult(intent, err)
	if res.ErrorKind == domain.ErrorKindInternal || res.ErrorKind == domain.ErrorKindStoreUnavailable {
		s.log.ErrorContext(ctx, "operation failed",
			slog.String("intent", intent.String()),
			slog.String("error", err.Error()),
		)
	}
	return res
}
