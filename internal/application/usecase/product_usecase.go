package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-ti-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un nuevo producto con stock 0. (name, model) es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	model := strings.TrimSpace(in.Model)
	if name == "" || !entity.ValidProductType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if err := lifecycle.ValidateMinimumStock(in.Type, in.MinimumStock); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByNameAndModel(ctx, name, model)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Model:        model,
		Brand:        strings.TrimSpace(in.Brand),
		CategoryID:   in.CategoryID,
		Type:         in.Type,
		MinimumStock: in.MinimumStock,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Update actualiza un producto. No permite modificar stock ni tipo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Model != nil {
		product.Model = strings.TrimSpace(*in.Model)
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.MinimumStock != nil {
		if err := lifecycle.ValidateMinimumStock(product.Type, in.MinimumStock); err != nil {
			return nil, err
		}
		product.MinimumStock = in.MinimumStock
	}
	if product.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil || in.Model != nil {
		dup, err := uc.repo.GetByNameAndModel(ctx, product.Name, product.Model)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != product.ID {
			return nil, domain.ErrConflict
		}
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Deactivate desactiva un producto; su historial de movimientos se conserva.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	product.Active = false
	product.UpdatedAt = time.Now().UTC()
	return uc.repo.Update(ctx, product)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, categoryID, productType string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		CategoryID: categoryID,
		Type:       productType,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toProductList(list, page), nil
}

// ListLowStock consumibles en o bajo el stock mínimo.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list, dto.PageRequest{Limit: len(list)}), nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return fmt.Errorf("%w: category_id es obligatorio", domain.ErrInvalidInput)
	}
	cat, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: categoría", domain.ErrNotFound)
	}
	return nil
}

func toProductList(list []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
