package inventory

import (
	"context"
	"fmt"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Consume lowers a medicine's stock. The name must resolve to an existing
// medicine; draining past zero fails with InsufficientStockError and leaves
// the cabinet untouched.
func (s *Service) Consume(ctx context.Context, in ConsumeInput) (domain.Medicine, error) {
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

		match, ok := s.resolver.Resolve(in.Name, refs)
		if !ok {
			return fmt.Errorf("medicine %q: %w", in.Name, domain.ErrNotFound)
		}

		med, err := s.medicines.AdjustQuantity(txCtx, in.GroupID, match.ID, -in.Quantity)
		if err != nil {
			return err
		}
		out = med

		change := -in.Quantity
		return s.logActivity(txCtx, med, domain.ActionUsed, &change, in.Actor)
	})
	if txErr != nil {
		return domain.Medicine{}, mapStoreErr(txErr)
	}

	return out, nil
}
