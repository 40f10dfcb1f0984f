package inventory

import (
	"context"
	"fmt"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// History returns a medicine's recent activity, newest first, capped by the
// configured history limit.
func (s *Service) History(ctx context.Context, in SearchInput) (domain.Medicine, []domain.Activity, error) {
	if err := in.Validate(); err != nil {
		return domain.Medicine{}, nil, err
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	refs, err := s.medicines.ListNames(ctx, in.GroupID)
	if err != nil {
		return domain.Medicine{}, nil, mapStoreErr(err)
	}

	match, ok := s.resolver.Resolve(in.Name, refs)
	if !ok {
		return domain.Medicine{}, nil, fmt.Errorf("medicine %q: %w", in.Name, domain.ErrNotFound)
	}

	med, err := s.medicines.GetByID(ctx, in.GroupID, match.ID)
	if err != nil {
		return domain.Medicine{}, nil, mapStoreErr(err)
	}

	entries, err := s.activity.ListByMedicine(ctx, in.GroupID, match.ID, s.cfg.HistoryLimit)
	if err != nil {
		return domain.Medicine{}, nil, mapStoreErr(err)
	}

	return med, entries, nil
}
