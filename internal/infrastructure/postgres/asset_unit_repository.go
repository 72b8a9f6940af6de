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

var _ repository.AssetUnitRepository = (*AssetUnitRepo)(nil)

const assetColumns = `id, product_id, serial_number, asset_tag, status, assigned_user_id, encryption_pass,
	purchase_date, warranty_expiration, purchase_cost, notes, created_at, updated_at`

// AssetUnitRepo unidades físicas de activos sobre PostgreSQL.
type AssetUnitRepo struct {
	q Querier
}

// NewAssetUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetUnitRepository(q Querier) *AssetUnitRepo {
	return &AssetUnitRepo{q: q}
}

// Create persiste la unidad. Número de serie duplicado → ErrConflict.
func (r *AssetUnitRepo) Create(ctx context.Context, a *entity.AssetUnit) error {
	query := `
		INSERT INTO asset_units (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, a.SerialNumber, a.AssetTag, a.Status, nullString(a.AssignedUserID), a.EncryptionPass,
		a.PurchaseDate, a.WarrantyExpiration, a.PurchaseCost, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert asset unit: %w", err)
	}
	return nil
}

func (r *AssetUnitRepo) GetByID(ctx context.Context, id string) (*entity.AssetUnit, error) {
	return r.getOne(ctx, `SELECT `+assetColumns+` FROM asset_units WHERE id = $1`, id)
}

// GetForUpdate bloquea la unidad hasta el fin de la transacción.
func (r *AssetUnitRepo) GetForUpdate(ctx context.Context, id string) (*entity.AssetUnit, error) {
	return r.getOne(ctx, `SELECT `+assetColumns+` FROM asset_units WHERE id = $1 FOR UPDATE`, id)
}

func (r *AssetUnitRepo) GetBySerial(ctx context.Context, serial string) (*entity.AssetUnit, error) {
	return r.getOne(ctx, `SELECT `+assetColumns+` FROM asset_units WHERE serial_number = $1`, serial)
}

func (r *AssetUnitRepo) getOne(ctx context.Context, query, arg string) (*entity.AssetUnit, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset unit: %w", err)
	}
	return a, nil
}

// UpdateState persiste estado, usuario asignado, clave sellada y notas.
func (r *AssetUnitRepo) UpdateState(ctx context.Context, a *entity.AssetUnit) error {
	query := `
		UPDATE asset_units SET status = $2, assigned_user_id = $3, encryption_pass = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.Status, nullString(a.AssignedUserID), a.EncryptionPass, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: estado y usuario asignado inconsistentes", domain.ErrInvalidState)
		}
		return fmt.Errorf("update asset unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista unidades por producto, estado y/o usuario asignado.
func (r *AssetUnitRepo) List(ctx context.Context, f repository.AssetFilter) ([]*entity.AssetUnit, error) {
	var where []string
	var args []any
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.AssignedUserID != "" {
		args = append(args, f.AssignedUserID)
		where = append(where, fmt.Sprintf("assigned_user_id = $%d", len(args)))
	}
	query := `SELECT ` + assetColumns + ` FROM asset_units`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit, offset := pageArgs(f.Limit, f.Offset)
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list asset units: %w", err)
	}
	defer rows.Close()
	var list []*entity.AssetUnit
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset unit: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAsset(row pgx.Row) (*entity.AssetUnit, error) {
	var a entity.AssetUnit
	var assigned *string
	err := row.Scan(&a.ID, &a.ProductID, &a.SerialNumber, &a.AssetTag, &a.Status, &assigned, &a.EncryptionPass,
		&a.PurchaseDate, &a.WarrantyExpiration, &a.PurchaseCost, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.AssignedUserID = fromNull(assigned)
	return &a, nil
}
