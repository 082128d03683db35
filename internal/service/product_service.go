package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/pkg/validator"
)

// ProductUpdate carries a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Description    *string
	SalePrice      *float64
	Barcode        *string
	Section        *string
	Stock          *int
	ExpirationDate *time.Time
	ImageURL       *string
}

type ProductService interface {
	Create(product *model.Product) error
	Get(id uuid.UUID) (*model.Product, error)
	List(filter repository.ProductFilter) ([]model.Product, error)
	Update(id uuid.UUID, upd ProductUpdate) (*model.Product, error)
	Delete(id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(product *model.Product) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", model.ErrValidation, first.FailedField, first.Tag)
	}

	// Surface a duplicate barcode as a typed conflict, never a raw
	// constraint violation from the storage layer.
	if existing, _ := s.productRepo.FindByBarcode(product.Barcode); existing != nil {
		return model.ErrBarcodeTaken
	}

	return s.productRepo.Create(product)
}

func (s *productService) Get(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *productService) List(filter repository.ProductFilter) ([]model.Product, error) {
	filter.Offset, filter.Limit = clampPage(filter.Offset, filter.Limit)
	return s.productRepo.FindAll(filter)
}

func (s *productService) Update(id uuid.UUID, upd ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.SalePrice != nil {
		if *upd.SalePrice < 0 {
			return nil, fmt.Errorf("%w: sale_price must not be negative", model.ErrValidation)
		}
		product.SalePrice = *upd.SalePrice
	}
	if upd.Barcode != nil && *upd.Barcode != product.Barcode {
		existing, err := s.productRepo.FindByBarcode(*upd.Barcode)
		if err != nil && !errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, model.ErrBarcodeTaken
		}
		product.Barcode = *upd.Barcode
	}
	if upd.Section != nil {
		product.Section = *upd.Section
	}
	if upd.Stock != nil {
		product.Stock = *upd.Stock
	}
	if upd.ExpirationDate != nil {
		product.ExpirationDate = upd.ExpirationDate
	}
	if upd.ImageURL != nil {
		product.ImageURL = upd.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product unconditionally, even if order lines still
// reference it.
func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}
