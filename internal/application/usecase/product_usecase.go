package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se deriva del ledger en cada lectura.
type ProductUseCase struct {
	repo  repository.ProductRepository
	stock inventory.StockCalculator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stock inventory.StockCalculator) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock}
}

// Create crea un nuevo producto con ID P### asignado por la secuencia. Active por defecto true.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	id, err := uc.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            id,
		Name:          in.Name,
		SKU:           strings.TrimSpace(in.SKU),
		UnitOfMeasure: in.UnitOfMeasure,
		Cost:          in.Cost.Round(2),
		SalePrice:     in.SalePrice.Round(2),
		Category:      in.Category,
		Location:      in.Location,
		Active:        active,
		Photo:         in.Photo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	// Producto recién creado: sin movimientos, stock 0.
	return toProductResponse(product, 0), nil
}

// GetByID obtiene un producto con su stock. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	stock, err := uc.stock.StockOf(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// Update actualiza los atributos presentes en la entrada. (nil, nil) si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.SKU != nil {
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = in.Cost.Round(2)
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = in.SalePrice.Round(2)
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.Photo != nil {
		product.Photo = *in.Photo
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	stock, err := uc.stock.StockOf(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, stock), nil
}

// List lista el catálogo con el stock de cada producto (onlyActive filtra los activos).
// Cada stock se calcula por separado: no es una instantánea consistente del catálogo.
func (uc *ProductUseCase) List(ctx context.Context, onlyActive bool) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		stock, err := uc.stock.StockOf(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toProductResponse(p, stock))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Delete elimina un producto. domain.ErrConflict si el ledger lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product, stock int) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		UnitOfMeasure: p.UnitOfMeasure,
		Cost:          p.Cost,
		SalePrice:     p.SalePrice,
		Category:      p.Category,
		Location:      p.Location,
		Active:        p.Active,
		Photo:         p.Photo,
		Stock:         stock,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
