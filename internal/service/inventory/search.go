package inventory

import (
	"context"
	"fmt"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Search looks a medicine up by (possibly misspelled) name and records the
// lookup in the activity log. The returned confidence is the resolver's
// similarity score, 100 for an exact hit.
func (s *Service) Search(ctx context.Context, in SearchInput) (domain.Medicine, int, error) {
	if err := in.Validate(); err != nil {
		return domain.Medicine{}, 0, err
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	var (
		out        domain.Medicine
		confidence int
	)
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

		med, err := s.medicines.GetByID(txCtx, in.GroupID, match.ID)
		if err != nil {
			return err
		}
		out = med
		confidence = match.Confidence

		return s.logActivity(txCtx, med, domain.ActionSearched, nil, in.Actor)
	})
	if txErr != nil {
		return domain.Medicine{}, 0, mapStoreErr(txErr)
	}

	return out, confidence, nil
}
