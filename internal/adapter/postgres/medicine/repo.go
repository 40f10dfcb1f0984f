// Package medicine implements the medicine repository using PostgreSQL.
// Fixed-shape queries use raw SQL; the refresh update with its optional SET
// clauses is built with squirrel.
package medicine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/medikeep/cabinet-backend/internal/adapter/postgres"
	"github.com/medikeep/cabinet-backend/internal/domain"
)

// Repo provides medicine persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new medicine repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const medicineColumns = `id, group_id, name, quantity, unit, expiry_date, location,
       added_by_id, added_by_name, created_at, updated_at`

const getByIDSQL = `
SELECT ` + medicineColumns + `
FROM medicines
WHERE id = $1 AND group_id = $2`

const getByNameSQL = `
SELECT ` + medicineColumns + `
FROM medicines
WHERE group_id = $1 AND lower(name) = lower($2)`

const listByGroupSQL = `
SELECT ` + medicineColumns + `
FROM medicines
WHERE group_id = $1
ORDER BY created_at ASC`

const listNamesSQL = `
SELECT id, name FROM medicines WHERE group_id = $1`

const insertSQL = `
INSERT INTO medicines (id, group_id, name, quantity, unit, expiry_date, location,
                       added_by_id, added_by_name, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const adjustQuantitySQL = `
UPDATE medicines
SET quantity = quantity + $1, updated_at = $2
WHERE id = $3 AND quantity + $1 >= 0
RETURNING ` + medicineColumns

const currentQuantitySQL = `
SELECT quantity FROM medicines WHERE id = $1`

const deleteByIDSQL = `
DELETE FROM medicines WHERE id = $1 AND group_id = $2`

// LockGroup serializes mutations for one group via a transaction-scoped
// advisory lock. Must be called inside RunInTx.
func (r *Repo) LockGroup(ctx context.Context, groupID string) error {
	return postgres.AcquireGroupLock(ctx, postgres.QuerierFromCtx(ctx, r.pool), groupID)
}

// GetByID returns a medicine by primary key scoped to a group.
func (r *Repo) GetByID(ctx context.Context, groupID string, id uuid.UUID) (domain.Medicine, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id, groupID)
	m, err := scanMedicine(row)
	if err != nil {
		return domain.Medicine{}, postgres.MapError(err, "medicine", id.String())
	}
	return m, nil
}

// GetByName returns the medicine whose name matches exactly, ignoring case.
func (r *Repo) GetByName(ctx context.Context, groupID, name string) (domain.Medicine, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByNameSQL, groupID, name)
	m, err := scanMedicine(row)
	if err != nil {
		return domain.Medicine{}, postgres.MapError(err, "medicine", name)
	}
	return m, nil
}

// ListByGroup returns all of a group's medicines in insertion order.
func (r *Repo) ListByGroup(ctx context.Context, groupID string) ([]domain.Medicine, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByGroupSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", postgres.MapError(err, "group", groupID))
	}
	defer rows.Close()

	return scanMedicines(rows)
}

// ListNames returns the (id, name) projection the fuzzy resolver scores
// against.
func (r *Repo) ListNames(ctx context.Context, groupID string) ([]domain.NameRef, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listNamesSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list medicine names: %w", postgres.MapError(err, "group", groupID))
	}
	defer rows.Close()

	var refs []domain.NameRef
	for rows.Next() {
		var ref domain.NameRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan name ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate name refs: %w", err)
	}
	return refs, nil
}

// Insert creates a new medicine from a draft and returns the stored row.
// A concurrent insert of the same name surfaces as domain.ErrAlreadyExists
// via the (group_id, lower(name)) unique index.
func (r *Repo) Insert(ctx context.Context, draft domain.MedicineDraft) (domain.Medicine, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC()
	m := domain.Medicine{
		ID:          uuid.New(),
		GroupID:     draft.GroupID,
		Name:        draft.Name,
		Quantity:    draft.Quantity,
		Unit:        draft.Unit,
		ExpiryDate:  draft.ExpiryDate,
		Location:    draft.Location,
		AddedByID:   draft.AddedByID,
		AddedByName: draft.AddedByName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := querier.Exec(ctx, insertSQL,
		m.ID, m.GroupID, m.Name, m.Quantity, m.Unit, m.ExpiryDate, m.Location,
		m.AddedByID, m.AddedByName, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return domain.Medicine{}, postgres.MapError(err, "medicine", draft.Name)
	}
	return m, nil
}

// Increment adds qty to an existing medicine's stock and refreshes any
// supplied optional attributes. Nil refresh fields keep their stored values.
func (r *Repo) Increment(ctx context.Context, groupID string, id uuid.UUID, qty int, refresh domain.RefreshFields) (domain.Medicine, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := psql.Update("medicines").
		Set("quantity", squirrel.Expr("quantity + ?", qty)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "group_id": groupID}).
		Suffix("RETURNING " + medicineColumns)

	if refresh.Unit != nil {
		update = update.Set("unit", *refresh.Unit)
	}
	if refresh.ExpiryDate != nil {
		update = update.Set("expiry_date", *refresh.ExpiryDate)
	}
	if refresh.Location != nil {
		update = update.Set("location", *refresh.Location)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return domain.Medicine{}, fmt.Errorf("build increment query: %w", err)
	}

	m, err := scanMedicine(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Medicine{}, postgres.MapError(err, "medicine", id.String())
	}
	return m, nil
}

// AdjustQuantity applies a signed delta to a medicine's stock. A delta that
// would drive the quantity negative fails with InsufficientStockError and
// leaves the row unchanged.
func (r *Repo) AdjustQuantity(ctx context.Context, groupID string, id uuid.UUID, delta int) (domain.Medicine, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, adjustQuantitySQL, delta, time.Now().UTC(), id)
	m, err := scanMedicine(row)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Medicine{}, postgres.MapError(err, "medicine", id.String())
	}

	// The conditional update matched nothing: either the medicine is gone
	// or the delta overdraws the stock. Disambiguate for the caller.
	var available int
	if err := querier.QueryRow(ctx, currentQuantitySQL, id).Scan(&available); err != nil {
		return domain.Medicine{}, postgres.MapError(err, "medicine", id.String())
	}
	return domain.Medicine{}, &domain.InsufficientStockError{Available: available, Requested: -delta}
}

// DeleteByID removes a medicine; its activity rows go with it by cascade.
func (r *Repo) DeleteByID(ctx context.Context, groupID string, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByIDSQL, id, groupID)
	if err != nil {
		return postgres.MapError(err, "medicine", id.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "medicine", id.String())
	}
	return nil
}

func scanMedicine(row pgx.Row) (domain.Medicine, error) {
	var m domain.Medicine
	err := row.Scan(
		&m.ID, &m.GroupID, &m.Name, &m.Quantity, &m.Unit, &m.ExpiryDate, &m.Location,
		&m.AddedByID, &m.AddedByName, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return domain.Medicine{}, err
	}
	return m, nil
}

func scanMedicines(rows pgx.Rows) ([]domain.Medicine, error) {
	var ms []domain.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medicines: %w", err)
	}
	return ms, nil
}
