package assets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/events"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
	"github.com/jhoicas/activos-ti-api/internal/application/ports"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

// Sealer sella y abre la clave de cifrado de disco de los equipos (pkg/secret.Box).
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// AssetUseCase registro de activos: alta de unidades, asignación y override de estado.
type AssetUseCase struct {
	txRunner  ports.TxRunner
	assets    repository.AssetUnitRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	sealer    Sealer
	publisher events.Publisher
	certs     ports.CertificateGenerator
}

// NewAssetUseCase construye el caso de uso. certs puede ser nil (sin actas PDF).
func NewAssetUseCase(
	txRunner ports.TxRunner,
	assets repository.AssetUnitRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	sealer Sealer,
	publisher events.Publisher,
	certs ports.CertificateGenerator,
) *AssetUseCase {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &AssetUseCase{
		txRunner:  txRunner,
		assets:    assets,
		products:  products,
		users:     users,
		sealer:    sealer,
		publisher: publisher,
		certs:     certs,
	}
}

// Create registra una unidad física disponible: suma 1 al stock del producto y
// deja un movimiento de entrada con la unidad.
func (uc *AssetUseCase) Create(ctx context.Context, actorID string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	serial := strings.TrimSpace(in.SerialNumber)
	if serial == "" || strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id y serial_number son obligatorios", domain.ErrInvalidInput)
	}
	if in.PurchaseDate != nil && in.WarrantyExpiration != nil && in.WarrantyExpiration.Before(*in.PurchaseDate) {
		return nil, fmt.Errorf("%w: la garantía vence antes de la compra", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	unit := &entity.AssetUnit{
		ID:                 uuid.New().String(),
		ProductID:          in.ProductID,
		SerialNumber:       serial,
		AssetTag:           strings.TrimSpace(in.AssetTag),
		Status:             entity.AssetStatusAvailable,
		PurchaseDate:       in.PurchaseDate,
		WarrantyExpiration: in.WarrantyExpiration,
		PurchaseCost:       in.PurchaseCost,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Type != entity.ProductTypeAsset {
			return fmt.Errorf("%w: el producto no es de tipo asset", domain.ErrInvalidInput)
		}
		existing, err := r.Assets.GetBySerial(ctx, serial)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: número de serie duplicado", domain.ErrConflict)
		}
		if err := r.Assets.Create(ctx, unit); err != nil {
			return err
		}
		if _, err := r.Products.AdjustStock(ctx, product.ID, 1); err != nil {
			return err
		}
		one := 1
		mov := inventory.NewMovement(entity.MovementTypeEntry, actorID)
		mov.ProductID = product.ID
		mov.AssetUnitID = unit.ID
		mov.Quantity = &one
		mov.Notes = "alta de unidad " + serial
		return r.Movements.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromAsset(unit)
	return &out, nil
}

// Assign entrega una unidad disponible a un usuario. En una sola transacción:
// estado assigned, usuario, clave sellada, movimiento de asignación y stock -1.
func (uc *AssetUseCase) Assign(ctx context.Context, actorID, assetID string, in dto.AssignAssetRequest) (*dto.AssignmentResponse, error) {
	if strings.TrimSpace(in.AssignedUserID) == "" {
		return nil, fmt.Errorf("%w: assigned_user_id es obligatorio", domain.ErrInvalidInput)
	}
	sealed, err := uc.seal(in.EncryptionPass)
	if err != nil {
		return nil, err
	}

	var (
		unit *entity.AssetUnit
		mov  *entity.MovementRecord
	)
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		unit, err = r.Assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if err := lifecycle.CanAssign(unit.Status); err != nil {
			return err
		}
		user, err := r.Users.GetByID(ctx, in.AssignedUserID)
		if err != nil {
			return err
		}
		if user == nil || !user.Active {
			return fmt.Errorf("%w: usuario", domain.ErrNotFound)
		}

		unit.Status = entity.AssetStatusAssigned
		unit.AssignedUserID = user.ID
		if sealed != "" {
			unit.EncryptionPass = sealed
		}
		if in.Notes != "" {
			unit.Notes = in.Notes
		}
		unit.UpdatedAt = time.Now().UTC()
		if err := r.Assets.UpdateState(ctx, unit); err != nil {
			return err
		}
		if _, err := r.Products.AdjustStock(ctx, unit.ProductID, -1); err != nil {
			return err
		}
		one := 1
		mov = inventory.NewMovement(entity.MovementTypeAssignment, actorID)
		mov.ProductID = unit.ProductID
		mov.AssetUnitID = unit.ID
		mov.Quantity = &one
		mov.AssignedUserID = user.ID
		mov.Notes = in.Notes
		return r.Movements.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	events.AfterCommit(ctx, uc.publisher, unit.ProductID, events.ReasonAssignment)
	return &dto.AssignmentResponse{
		Asset:    dto.FromAsset(unit),
		Movement: dto.FromMovement(mov),
	}, nil
}

// UpdateStatus override administrativo: no valida la máquina de estados ni registra movimiento.
// Salir de assigned limpia el usuario; forzar assigned exige un usuario existente.
// Las unidades en reparación se cierran con RegisterReturn.
func (uc *AssetUseCase) UpdateStatus(ctx context.Context, assetID string, in dto.UpdateAssetStatusRequest) (*dto.AssetResponse, error) {
	if in.Status == entity.AssetStatusAssigned && strings.TrimSpace(in.AssignedUserID) == "" {
		return nil, fmt.Errorf("%w: assigned_user_id es obligatorio para el estado assigned", domain.ErrInvalidInput)
	}

	var (
		unit  *entity.AssetUnit
		delta int
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		unit, err = r.Assets.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if err := lifecycle.OverrideStatus(unit.Status, in.Status); err != nil {
			return err
		}
		if in.Status == entity.AssetStatusAssigned {
			user, err := r.Users.GetByID(ctx, in.AssignedUserID)
			if err != nil {
				return err
			}
			if user == nil || !user.Active {
				return fmt.Errorf("%w: usuario", domain.ErrNotFound)
			}
			unit.AssignedUserID = user.ID
		} else {
			unit.AssignedUserID = ""
		}

		delta = lifecycle.AvailabilityDelta(unit.Status, in.Status)
		unit.Status = in.Status
		unit.UpdatedAt = time.Now().UTC()
		if err := r.Assets.UpdateState(ctx, unit); err != nil {
			return err
		}
		if delta != 0 {
			if _, err := r.Products.AdjustStock(ctx, unit.ProductID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if delta < 0 {
		events.AfterCommit(ctx, uc.publisher, unit.ProductID, events.ReasonStatusChange)
	}
	out := dto.FromAsset(unit)
	return &out, nil
}

// GetByID obtiene una unidad. revealSecret abre la clave de cifrado (solo administradores).
func (uc *AssetUseCase) GetByID(ctx context.Context, id string, revealSecret bool) (*dto.AssetResponse, error) {
	unit, err := uc.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromAsset(unit)
	if revealSecret && unit.EncryptionPass != "" && uc.sealer != nil {
		plain, err := uc.sealer.Open(unit.EncryptionPass)
		if err != nil {
			return nil, fmt.Errorf("abrir encryption_pass: %w", err)
		}
		out.EncryptionPass = plain
	}
	return &out, nil
}

// List lista unidades con filtros.
func (uc *AssetUseCase) List(ctx context.Context, q dto.AssetQuery) (*dto.AssetListResponse, error) {
	q.DefaultPage()
	list, err := uc.assets.List(ctx, repository.AssetFilter{
		ProductID:      q.ProductID,
		Status:         q.Status,
		AssignedUserID: q.AssignedUserID,
		Limit:          q.Limit,
		Offset:         q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toAssetList(list, q.PageRequest), nil
}

// ListAssigned lista los equipos asignados a un usuario.
func (uc *AssetUseCase) ListAssigned(ctx context.Context, userID string, page dto.PageRequest) (*dto.AssetListResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.assets.List(ctx, repository.AssetFilter{
		Status:         entity.AssetStatusAssigned,
		AssignedUserID: userID,
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toAssetList(list, page), nil
}

// Certificate genera el acta de entrega en PDF de una unidad asignada.
func (uc *AssetUseCase) Certificate(ctx context.Context, assetID, issuedBy string) ([]byte, error) {
	if uc.certs == nil {
		return nil, fmt.Errorf("generador de actas no configurado")
	}
	unit, err := uc.assets.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if unit.Status != entity.AssetStatusAssigned {
		return nil, fmt.Errorf("%w: el activo no está asignado", domain.ErrInvalidState)
	}
	product, err := uc.products.GetByID(ctx, unit.ProductID)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, unit.AssignedUserID)
	if err != nil {
		return nil, err
	}
	if product == nil || user == nil {
		return nil, domain.ErrNotFound
	}
	return uc.certs.GenerateAssignmentCertificate(ports.AssignmentCertificate{
		Asset:    unit,
		Product:  product,
		Assignee: user,
		IssuedBy: issuedBy,
	})
}

func (uc *AssetUseCase) seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	if uc.sealer == nil {
		return "", fmt.Errorf("sellado de claves no configurado")
	}
	return uc.sealer.Seal(plain)
}

func toAssetList(list []*entity.AssetUnit, page dto.PageRequest) *dto.AssetListResponse {
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.FromAsset(a))
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
