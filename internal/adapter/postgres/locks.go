package postgres

import (
	"context"
	"fmt"
)

// AcquireGroupLock takes a transaction-scoped advisory lock keyed by group
// ID, serializing all cabinet mutations for one group while leaving other
// groups untouched. The lock releases automatically at commit or rollback,
// so this must run inside a transaction; outside one it locks nothing
// useful and Postgres releases it immediately.
func AcquireGroupLock(ctx context.Context, q Querier, groupID string) error {
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, groupID); err != nil {
		return fmt.Errorf("acquire group lock: %w", MapError(err, "group", groupID))
	}
	return nil
}
