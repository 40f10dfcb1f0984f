package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Add records newly acquired stock. If the name resolves to an existing
// medicine (fuzzily, so "Nappa" lands on "Napa") its quantity is raised and
// any supplied unit, expiry or location refreshes the stored value;
// otherwise a new medicine is created. Resolution, mutation and the audit
// entry commit atomically under the group's lock.
func (s *Service) Add(ctx context.Context, in AddInput) (domain.Medicine, error) {
	if err := in.Validate(); err != nil {
		return domain.Medicine{}, err
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	var out domain.Medicine
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.medicines.LockGroup(txCtx, in.GroupID); err != nil {
			return err
		}

		refs, err := s.medicines.ListNames(txCtx, in.GroupID)
		if err != nil {
			return err
		}

		if match, ok := s.resolver.Resolve(in.Name, refs); ok {
			med, err := s.medicines.Increment(txCtx, in.GroupID, match.ID, in.Quantity, domain.RefreshFields{
				Unit:       in.Unit,
				ExpiryDate: in.Expiry,
				Location:   in.Location,
			})
			if err != nil {
				return err
			}
			out = med
			qty := in.Quantity
			return s.logActivity(txCtx, med, domain.ActionAdded, &qty, in.Actor)
		}

		med, err := s.medicines.Insert(txCtx, domain.MedicineDraft{
			GroupID:     in.GroupID,
			Name:        in.Name,
			Quantity:    in.Quantity,
			Unit:        unitOrDefault(in.Unit),
			ExpiryDate:  in.Expiry,
			Location:    in.Location,
			AddedByID:   in.Actor.ID,
			AddedByName: actorName(in.Actor),
		})
		if err != nil {
			// The group lock is held and resolution found no match, so a
			// duplicate here means the unique index and the resolver
			// disagree about what exists.
			if errors.Is(err, domain.ErrAlreadyExists) {
				s.log.ErrorContext(txCtx, "duplicate insert after clean resolve",
					slog.String("group_id", in.GroupID),
					slog.String("name", in.Name),
				)
				return fmt.Errorf("add %q: resolver missed existing row: %w", in.Name, err)
			}
			return err
		}
		out = med
		qty := in.Quantity
		return s.logActivity(txCtx, med, domain.ActionAdded, &qty, in.Actor)
	})
	if txErr != nil {
		return domain.Medicine{}, mapStoreErr(txErr)
	}

	return out, nil
}

func unitOrDefault(unit *string) string {
	if unit != nil && *unit != "" {
		return *unit
	}
	return "tablets"
}

func actorName(a domain.Actor) string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.ID
}

func (s *Service) logActivity(ctx context.Context, m domain.Medicine, action domain.ActionKind, change *int, actor domain.Actor) error {
	err := s.activity.Append(ctx, domain.Activity{
		MedicineID:     m.ID,
		GroupID:        m.GroupID,
		Action:         action,
		QuantityChange: change,
		ActorID:        actor.ID,
		ActorName:      actorName(actor),
	})
	if err != nil {
		return fmt.Errorf("log %s: %w", action, err)
	}
	return nil
}
