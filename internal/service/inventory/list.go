package inventory

import (
	"context"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// ListAll returns the group's whole cabinet in insertion order. A read-only
// snapshot: no lock is taken and nothing is logged.
func (s *Service) ListAll(ctx context.Context, groupID string) ([]domain.Medicine, error) {
	if groupID == "" {
		return nil, domain.NewValidationError("group_id", "required")
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	meds, err := s.medicines.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return meds, nil
}
