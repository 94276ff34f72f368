package service

import (
	"strings"

	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService handles catalog products and their variants.
type ProductService struct {
	repo        repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewProductService creates a product service.
func NewProductService(repo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *ProductService {
	return &ProductService{repo: repo, variantRepo: variantRepo}
}

// ProductInput carries create/update fields.
type ProductInput struct {
	CategoryID         uint
	Name               string
	Description        string
	RetailPrice        decimal.Decimal
	WholesalePrice     decimal.Decimal
	WholesaleAvailable bool
	Stock              int
	ImageURL           string
	Unit               string
	IsActive           *bool
	SortOrder          int
}

// VariantInput carries variant create/update fields.
type VariantInput struct {
	Name            string
	PriceAdjustment decimal.Decimal
	Stock           *int
}

// ListPublic lists active products for the storefront.
func (s *ProductService) ListPublic(categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		OnlyActive:   true,
		WithCategory: true,
	})
}

// GetPublic returns an active product with variants.
func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	product, err := s.repo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListAdmin lists products for the admin console, inactive included.
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetAdmin returns any product with variants.
func (s *ProductService) GetAdmin(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create adds a product.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	if input.RetailPrice.IsNegative() || input.WholesalePrice.IsNegative() || input.Stock < 0 {
		return nil, ErrInvalidInput
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "piece"
	}
	product := &models.Product{
		CategoryID:         input.CategoryID,
		Name:               name,
		Description:        strings.TrimSpace(input.Description),
		RetailPrice:        models.NewMoneyFromDecimal(input.RetailPrice),
		WholesalePrice:     models.NewMoneyFromDecimal(input.WholesalePrice),
		WholesaleAvailable: input.WholesaleAvailable,
		Stock:              input.Stock,
		ImageURL:           strings.TrimSpace(input.ImageURL),
		Unit:               unit,
		IsActive:           isActive,
		SortOrder:          input.SortOrder,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update edits a product.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetAdmin(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	if input.RetailPrice.IsNegative() || input.WholesalePrice.IsNegative() || input.Stock < 0 {
		return nil, ErrInvalidInput
	}
	product.CategoryID = input.CategoryID
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.RetailPrice = models.NewMoneyFromDecimal(input.RetailPrice)
	product.WholesalePrice = models.NewMoneyFromDecimal(input.WholesalePrice)
	product.WholesaleAvailable = input.WholesaleAvailable
	product.Stock = input.Stock
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	if unit := strings.TrimSpace(input.Unit); unit != "" {
		product.Unit = unit
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.SortOrder = input.SortOrder
	product.Category = nil
	product.Variants = nil
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return s.GetAdmin(id)
}

// Delete removes a product and its variants.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetAdmin(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// CreateVariant adds a variant to a product.
func (s *ProductService) CreateVariant(productID uint, input VariantInput) (*models.ProductVariant, error) {
	if _, err := s.GetAdmin(productID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	variant := &models.ProductVariant{
		ProductID:       productID,
		Name:            name,
		PriceAdjustment: models.NewMoneyFromDecimal(input.PriceAdjustment),
		Stock:           input.Stock,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant edits a variant; it must belong to productID.
func (s *ProductService) UpdateVariant(productID, variantID uint, input VariantInput) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}
	if variant.ProductID != productID {
		return nil, ErrVariantMismatch
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	variant.Name = name
	variant.PriceAdjustment = models.NewMoneyFromDecimal(input.PriceAdjustment)
	variant.Stock = input.Stock
	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant removes a variant; it must belong to productID.
func (s *ProductService) DeleteVariant(productID, variantID uint) error {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrNotFound
	}
	if variant.ProductID != productID {
		return ErrVariantMismatch
	}
	return s.variantRepo.Delete(variantID)
}
