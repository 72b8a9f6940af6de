package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/usecase"
	"github.com/jhoicas/activos-ti-api/internal/domain"
	"github.com/jhoicas/activos-ti-api/internal/domain/entity"
	"github.com/jhoicas/activos-ti-api/internal/testutil/memstore"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_StockInicialCero(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewProductUseCase(store.Repos().Products, store.Categories())
	cat := store.Category(t, "Periféricos")

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: " Mouse ", Model: "M185", Brand: "Logitech", CategoryID: cat.ID,
		Type: entity.ProductTypeConsumable, MinimumStock: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mouse", p.Name)
	assert.Equal(t, 0, p.CurrentStock)
	require.NotNil(t, p.MinimumStock)
	assert.Equal(t, 5, *p.MinimumStock)
	assert.True(t, p.Active)
}

func TestProductCreate_Errores(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewProductUseCase(store.Repos().Products, store.Categories())
	cat := store.Category(t, "Equipos")

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Laptop", Model: "T14", CategoryID: cat.ID, Type: entity.ProductTypeAsset})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Laptop", Model: "T14", CategoryID: cat.ID, Type: entity.ProductTypeAsset})
	assert.ErrorIs(t, err, domain.ErrConflict, "(name, model) es único")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Laptop", Model: "X1", CategoryID: cat.ID, Type: entity.ProductTypeAsset, MinimumStock: intPtr(2)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el mínimo solo aplica a consumibles")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Cable", CategoryID: cat.ID, Type: entity.ProductTypeConsumable, MinimumStock: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Cable", CategoryID: cat.ID, Type: "servicio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Cable", CategoryID: uuid.New().String(), Type: entity.ProductTypeConsumable})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewProductUseCase(store.Repos().Products, store.Categories())
	p := store.Consumable(t, "Toner", 7, 2)
	other := store.Consumable(t, "Papel", 3, 1)

	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Brand: strPtr("HP"), MinimumStock: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, "HP", out.Brand)
	assert.Equal(t, 7, out.CurrentStock)
	assert.Equal(t, 4, *out.MinimumStock)

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr(other.Name), Model: strPtr(other.Model)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, uuid.New().String(), dto.UpdateProductRequest{Brand: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListLowStock(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewProductUseCase(store.Repos().Products, store.Categories())
	low := store.Consumable(t, "Pilas", 2, 3)
	store.Consumable(t, "Cables", 10, 3)
	store.AssetProduct(t, "Laptop", "T14")

	out, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, low.ID, out.Items[0].ID)
}

func TestProductDeactivate(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewProductUseCase(store.Repos().Products, store.Categories())
	p := store.Consumable(t, "Toner", 1, 0)

	require.NoError(t, uc.Deactivate(ctx, p.ID))
	assert.False(t, store.Product(t, p.ID).Active)
	assert.ErrorIs(t, uc.Deactivate(ctx, uuid.New().String()), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías y ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_NombreUnico(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewCategoryUseCase(store.Categories())

	a, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Redes"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Redes"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	b, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Impresión"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, b.ID, dto.UpdateCategoryRequest{Name: strPtr(a.Name)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	active := false
	out, err := uc.Update(ctx, b.ID, dto.UpdateCategoryRequest{Active: &active})
	require.NoError(t, err)
	assert.False(t, out.Active)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestLocation_DepartamentoConSede(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	repos := store.Repos()
	uc := usecase.NewLocationUseCase(repos.Branches, repos.Departments)

	branch, err := uc.CreateBranch(ctx, dto.CreateBranchRequest{Name: "Sede Norte", Address: "Calle 100"})
	require.NoError(t, err)

	dept, err := uc.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Contabilidad", BranchID: branch.ID})
	require.NoError(t, err)
	assert.Equal(t, branch.ID, dept.BranchID)
	_, err = uc.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Sin sede"})
	require.NoError(t, err)

	_, err = uc.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Fantasma", BranchID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.CreateBranch(ctx, dto.CreateBranchRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ofBranch, err := uc.ListDepartments(ctx, branch.ID)
	require.NoError(t, err)
	require.Len(t, ofBranch, 1)
	assert.Equal(t, "Contabilidad", ofBranch[0].Name)

	all, err := uc.ListDepartments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserDeactivate(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewUserUseCase(store.Repos().Users)
	u := store.User(t, "u@empresa.com", entity.RoleUser)

	require.NoError(t, uc.Deactivate(ctx, u.ID))
	got, err := uc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	assert.ErrorIs(t, uc.Deactivate(ctx, uuid.New().String()), domain.ErrUserNotFound)
}
