package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

var _ repository.RepairRepository = (*RepairRepo)(nil)

const repairColumns = `id, asset_unit_id, repair_provider, issue_description, sent_date, sent_by, return_date,
	was_repaired, repair_description, disposal_reason, registered_by, status, created_at, updated_at`

// RepairRepo reparaciones sobre PostgreSQL.
type RepairRepo struct {
	q Querier
}

// NewRepairRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRepairRepository(q Querier) *RepairRepo {
	return &RepairRepo{q: q}
}

func (r *RepairRepo) Create(ctx context.Context, rep *entity.RepairRecord) error {
	query := `
		INSERT INTO repairs (` + repairColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		rep.ID, rep.AssetUnitID, rep.RepairProvider, rep.IssueDescription, rep.SentDate, rep.SentBy, rep.ReturnDate,
		rep.WasRepaired, rep.RepairDescription, rep.DisposalReason, nullString(rep.RegisteredBy), rep.Status,
		rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert repair: %w", err)
	}
	return nil
}

func (r *RepairRepo) GetByID(ctx context.Context, id string) (*entity.RepairRecord, error) {
	return r.getOne(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1`, id)
}

// GetForUpdate bloquea la reparación para serializar retornos concurrentes.
func (r *RepairRepo) GetForUpdate(ctx context.Context, id string) (*entity.RepairRecord, error) {
	return r.getOne(ctx, `SELECT `+repairColumns+` FROM repairs WHERE id = $1 FOR UPDATE`, id)
}

func (r *RepairRepo) getOne(ctx context.Context, query, arg string) (*entity.RepairRecord, error) {
	rep, err := scanRepair(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair: %w", err)
	}
	return rep, nil
}

// Close guarda el cierre solo si la reparación sigue pendiente.
func (r *RepairRepo) Close(ctx context.Context, rep *entity.RepairRecord) error {
	query := `
		UPDATE repairs SET status = $2, return_date = $3, was_repaired = $4, repair_description = $5,
			disposal_reason = $6, registered_by = $7, updated_at = $8
		WHERE id = $1 AND status = 'pending'`
	cmd, err := r.q.Exec(ctx, query,
		rep.ID, rep.Status, rep.ReturnDate, rep.WasRepaired, rep.RepairDescription,
		rep.DisposalReason, nullString(rep.RegisteredBy), rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("close repair: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyReturned
	}
	return nil
}

func (r *RepairRepo) List(ctx context.Context, f repository.RepairFilter) ([]*entity.RepairRecord, error) {
	var where []string
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.AssetUnitID != "" {
		args = append(args, f.AssetUnitID)
		where = append(where, fmt.Sprintf("asset_unit_id = $%d", len(args)))
	}
	query := `SELECT ` + repairColumns + ` FROM repairs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := pageArgs(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY sent_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	defer rows.Close()
	var list []*entity.RepairRecord
	for rows.Next() {
		rep, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

func scanRepair(row pgx.Row) (*entity.RepairRecord, error) {
	var rep entity.RepairRecord
	var registeredBy *string
	err := row.Scan(&rep.ID, &rep.AssetUnitID, &rep.RepairProvider, &rep.IssueDescription, &rep.SentDate, &rep.SentBy,
		&rep.ReturnDate, &rep.WasRepaired, &rep.RepairDescription, &rep.DisposalReason, &registeredBy, &rep.Status,
		&rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rep.RegisteredBy = fromNull(registeredBy)
	return &rep, nil
}
