package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func newProductUseCase() (*usecase.ProductUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.Products(), inventory.NewStockUseCase(store.Movements())), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateAssignsSequentialIDs(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tornillo", Cost: decimal.RequireFromString("1.005")})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tuerca", Active: ptr(false)})
	require.NoError(t, err)

	assert.Equal(t, "P001", first.ID)
	assert.Equal(t, "P002", second.ID)
	assert.True(t, first.Active, "active por defecto")
	assert.False(t, second.Active)
	assert.Equal(t, "1.01", first.Cost.StringFixed(2))
	assert.Equal(t, 0, first.Stock)
}

func TestProduct_CreateValidation(t *testing.T) {
	uc, _ := newProductUseCase()
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "X", SalePrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_GetAndListIncludeStock(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tornillo"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Inactivo", Active: ptr(false)})
	require.NoError(t, err)

	store.Movements().Append(&entity.Movement{ID: "M001", Date: time.Now(), ProductID: p.ID, Type: "Ingreso", Quantity: ptr(12)})
	store.Movements().Append(&entity.Movement{ID: "M002", Date: time.Now(), ProductID: p.ID, Notes: "Venta", Quantity: ptr(5)})

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 7, all.Items[0].Stock)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active.Items, 1)

	missing, err := uc.GetByID(ctx, "P999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProduct_UpdatePartial(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tornillo", Category: "Ferretería"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{SalePrice: ptr(decimal.RequireFromString("2.5")), Active: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", out.Name)
	assert.Equal(t, "Ferretería", out.Category)
	assert.Equal(t, "2.50", out.SalePrice.StringFixed(2))
	assert.False(t, out.Active)

	missing, err := uc.Update(ctx, "P404", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_DeleteWithMovementsConflicts(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()
	withLedger, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tornillo"})
	require.NoError(t, err)
	clean, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tuerca"})
	require.NoError(t, err)
	store.Movements().Append(&entity.Movement{ID: "M001", Date: time.Now(), ProductID: withLedger.ID, Type: "Ingreso", Quantity: ptr(1)})

	assert.ErrorIs(t, uc.Delete(ctx, withLedger.ID), domain.ErrConflict)
	assert.NoError(t, uc.Delete(ctx, clean.ID))
	assert.ErrorIs(t, uc.Delete(ctx, clean.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUser_CreateDefaultsAndConflicts(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: " Ana@Example.com ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperador, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Otra", Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "X", Email: "x@example.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "X", Email: "x@example.com", Password: "secreto123", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "X", Email: "no-es-email", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUser_UpdatePasswordDelete(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: ptr(entity.RoleAnalista)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAnalista, out.Role)
	assert.Equal(t, "Ana", out.Name)

	before, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{Password: "otraClave456"}))
	after, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	require.NoError(t, uc.Delete(ctx, u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "no-uuid"), domain.ErrUserNotFound)
	assert.ErrorIs(t, uc.ChangePassword(ctx, "no-uuid", dto.ChangePasswordRequest{Password: "otraClave456"}), domain.ErrUserNotFound)
}
