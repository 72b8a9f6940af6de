package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, type, product_id, asset_unit_id, quantity, source_id, destination_department_id,
	destination_branch_id, assigned_user_id, created_by, notes, created_at`

// MovementRepo log de movimientos (solo inserción) sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta un movimiento. No hay Update ni Delete.
func (r *MovementRepo) Append(ctx context.Context, m *entity.MovementRecord) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Type, m.ProductID, nullString(m.AssetUnitID), m.Quantity, nullString(m.SourceID),
		nullString(m.DestinationDepartmentID), nullString(m.DestinationBranchID), nullString(m.AssignedUserID),
		m.CreatedBy, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementRecord, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List filtra por tipo, producto, unidad, usuario y rango de fechas. Orden: más reciente primero
// (los IDs son UUIDv7, ordenables por creación).
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementRecord, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.AssetUnitID != "" {
		add("asset_unit_id = $%d", f.AssetUnitID)
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("(created_by = $%d OR assigned_user_id = $%d)", len(args), len(args)))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	query := `SELECT ` + movementColumns + ` FROM movements`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := pageArgs(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.MovementRecord, error) {
	var m entity.MovementRecord
	var unit, source, dept, branch, assigned *string
	err := row.Scan(&m.ID, &m.Type, &m.ProductID, &unit, &m.Quantity, &source, &dept,
		&branch, &assigned, &m.CreatedBy, &m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.AssetUnitID = fromNull(unit)
	m.SourceID = fromNull(source)
	m.DestinationDepartmentID = fromNull(dept)
	m.DestinationBranchID = fromNull(branch)
	m.AssignedUserID = fromNull(assigned)
	return &m, nil
}
