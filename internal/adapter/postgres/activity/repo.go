// Package activity implements the append-only activity log repository.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/medikeep/cabinet-backend/internal/adapter/postgres"
	"github.com/medikeep/cabinet-backend/internal/domain"
)

// DefaultHistoryLimit caps per-medicine history listings.
const DefaultHistoryLimit = 50

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const insertSQL = `
INSERT INTO activity_log (id, medicine_id, group_id, action, quantity_change,
                          actor_id, actor_name, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const listByMedicineSQL = `
SELECT id, medicine_id, group_id, action, quantity_change, actor_id, actor_name, created_at
FROM activity_log
WHERE group_id = $1 AND medicine_id = $2
ORDER BY created_at DESC
LIMIT $3`

// Append records one activity. The entry's ID and CreatedAt are assigned
// here; the caller's values are ignored.
func (r *Repo) Append(ctx context.Context, entry domain.Activity) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	_, err := querier.Exec(ctx, insertSQL,
		entry.ID, entry.MedicineID, entry.GroupID, string(entry.Action),
		entry.QuantityChange, entry.ActorID, entry.ActorName, entry.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "activity", entry.MedicineID.String())
	}
	return nil
}

// ListByMedicine returns a medicine's most recent activity, newest first.
// A non-positive limit falls back to DefaultHistoryLimit.
func (r *Repo) ListByMedicine(ctx context.Context, groupID string, medicineID uuid.UUID, limit int) ([]domain.Activity, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := querier.Query(ctx, listByMedicineSQL, groupID, medicineID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", postgres.MapError(err, "medicine", medicineID.String()))
	}
	defer rows.Close()

	var entries []domain.Activity
	for rows.Next() {
		var (
			e      domain.Activity
			action string
		)
		if err := rows.Scan(&e.ID, &e.MedicineID, &e.GroupID, &action,
			&e.QuantityChange, &e.ActorID, &e.ActorName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.Action = domain.ActionKind(action)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}

// Stats aggregates a group's activity since the given time: total count,
// per-action breakdown, the five most active actors, and the five most
// consumed medicines. Rankings exclude medicines deleted since (their log
// rows cascade away with the medicine).
func (r *Repo) Stats(ctx context.Context, groupID string, since time.Time) (domain.StatsReport, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	report := domain.StatsReport{GroupID: groupID, Since: since}
	scope := squirrel.And{
		squirrel.Eq{"group_id": groupID},
		squirrel.GtOrEq{"created_at": since},
	}

	totalSQL, totalArgs, err := psql.
		Select("count(*)").
		From("activity_log").
		Where(scope).
		ToSql()
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("build total query: %w", err)
	}
	if err := querier.QueryRow(ctx, totalSQL, totalArgs...).Scan(&report.TotalActivities); err != nil {
		return domain.StatsReport{}, fmt.Errorf("count activity: %w", postgres.MapError(err, "group", groupID))
	}

	byActionSQL, byActionArgs, err := psql.
		Select("action", "count(*)").
		From("activity_log").
		Where(scope).
		GroupBy("action").
		OrderBy("count(*) DESC", "action ASC").
		ToSql()
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("build by-action query: %w", err)
	}
	rows, err := querier.Query(ctx, byActionSQL, byActionArgs...)
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("count by action: %w", postgres.MapError(err, "group", groupID))
	}
	defer rows.Close()
	for rows.Next() {
		var (
			ac     domain.ActionCount
			action string
		)
		if err := rows.Scan(&action, &ac.Count); err != nil {
			return domain.StatsReport{}, fmt.Errorf("scan action count: %w", err)
		}
		ac.Action = domain.ActionKind(action)
		report.ByAction = append(report.ByAction, ac)
	}
	if err := rows.Err(); err != nil {
		return domain.StatsReport{}, fmt.Errorf("iterate action counts: %w", err)
	}

	actorsSQL, actorsArgs, err := psql.
		Select("actor_name", "count(*)").
		From("activity_log").
		Where(scope).
		GroupBy("actor_name").
		OrderBy("count(*) DESC", "actor_name ASC").
		Limit(5).
		ToSql()
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("build actors query: %w", err)
	}
	actorRows, err := querier.Query(ctx, actorsSQL, actorsArgs...)
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("rank actors: %w", postgres.MapError(err, "group", groupID))
	}
	defer actorRows.Close()
	for actorRows.Next() {
		var ac domain.ActorCount
		if err := actorRows.Scan(&ac.ActorName, &ac.Count); err != nil {
			return domain.StatsReport{}, fmt.Errorf("scan actor count: %w", err)
		}
		report.MostActive = append(report.MostActive, ac)
	}
	if err := actorRows.Err(); err != nil {
		return domain.StatsReport{}, fmt.Errorf("iterate actor counts: %w", err)
	}

	usedSQL, usedArgs, err := psql.
		Select("m.name", "count(*)").
		From("activity_log a").
		Join("medicines m ON m.id = a.medicine_id").
		Where(squirrel.And{
			squirrel.Eq{"a.group_id": groupID, "a.action": string(domain.ActionUsed)},
			squirrel.GtOrEq{"a.created_at": since},
		}).
		GroupBy("m.name").
		OrderBy("count(*) DESC", "m.name ASC").
		Limit(5).
		ToSql()
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("build most-used query: %w", err)
	}
	usedRows, err := querier.Query(ctx, usedSQL, usedArgs...)
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("rank used medicines: %w", postgres.MapError(err, "group", groupID))
	}
	defer usedRows.Close()
	for usedRows.Next() {
		var mu domain.MedicineUsage
		if err := usedRows.Scan(&mu.Name, &mu.UsedCount); err != nil {
			return domain.StatsReport{}, fmt.Errorf("scan medicine usage: %w", err)
		}
		report.MostUsed = append(report.MostUsed, mu)
	}
	if err := usedRows.Err(); err != nil {
		return domain.StatsReport{}, fmt.Errorf("iterate medicine usage: %w", err)
	}

	return report, nil
}
