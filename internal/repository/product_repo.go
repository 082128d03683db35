package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-retail-backoffice/internal/model"
)

// ProductFilter narrows product listings. Nil/empty fields are ignored.
type ProductFilter struct {
	Section   string // case-insensitive substring
	MinPrice  *float64
	MaxPrice  *float64
	Available bool // remaining stock > 0
	Offset    int
	Limit     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindAll(filter ProductFilter) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	q := r.db.Model(&model.Product{})
	if filter.Section != "" {
		q = q.Where("section ILIKE ?", "%"+filter.Section+"%")
	}
	if filter.MinPrice != nil {
		q = q.Where("sale_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("sale_price <= ?", *filter.MaxPrice)
	}
	if filter.Available {
		q = q.Where("stock > 0")
	}

	var products []model.Product
	err := q.Order("created_at ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}
