package inventory

import (
	"context"
	"time"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Stats reports the group's activity over the configured window: total
// actions, the per-action breakdown, the most active members and the most
// consumed medicines.
func (s *Service) Stats(ctx context.Context, groupID string) (domain.StatsReport, error) {
	if groupID == "" {
		return domain.StatsReport{}, domain.NewValidationError("group_id", "required")
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -s.cfg.StatsWindowDays)
	report, err := s.activity.Stats(ctx, groupID, since)
	if err != nil {
		return domain.StatsReport{}, mapStoreErr(err)
	}
	return report, nil
}
