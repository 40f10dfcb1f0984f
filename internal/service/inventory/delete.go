package inventory

import (
	"context"
	"fmt"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Delete removes a medicine from the cabinet entirely. The deletion entry is
// logged first and then cascades away with the medicine, so the group's
// recent-activity totals stay consistent with what the cabinet contains.
// Authorization is the transport's concern; the service deletes for anyone.
func (s *Service) Delete(ctx context.Context, in DeleteInput) (domain.Medicine, error) {
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

		med, err := s.medicines.GetByID(txCtx, in.GroupID, match.ID)
		if err != nil {
			return err
		}
		out = med

		if err := s.logActivity(txCtx, med, domain.ActionDeleted, nil, in.Actor); err != nil {
			return err
		}

		return s.medicines.DeleteByID(txCtx, in.GroupID, match.ID)
	})
	if txErr != nil {
		return domain.Medicine{}, mapStoreErr(txErr)
	}

	return out, nil
}
