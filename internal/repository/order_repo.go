package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-retail-backoffice/internal/model"
)

// OrderFilter narrows order listings. Date bounds compare by calendar date,
// not time of day. Section requires a join through order_lines to products
// and de-duplicates orders matching via any contained line.
type OrderFilter struct {
	Status    string // case-insensitive substring
	ClientID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Section   string // case-insensitive substring on product section
	Offset    int
	Limit     int
}

type OrderRepository interface {
	// CreateWithLines commits the order, its lines, and one conditional
	// stock decrement per line as a single unit of work.
	CreateWithLines(order *model.Order) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindAll(filter OrderFilter) ([]model.Order, error)
	UpdateStatus(id uuid.UUID, status string) error
	// ReplaceLines deletes every existing line and inserts fresh quantity-1
	// lines for productIDs. Stock counts are left untouched.
	ReplaceLines(orderID uuid.UUID, productIDs []uuid.UUID) error
	Delete(id uuid.UUID) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) CreateWithLines(order *model.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		lines := order.Lines
		order.Lines = nil // lines are inserted manually below
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}

			// Atomic conditional decrement: the WHERE clause is the stock
			// check, so two concurrent orders can never both consume the
			// last unit.
			res := tx.Model(&model.Product{}).
				Where("id = ? AND stock > 0", lines[i].ProductID).
				UpdateColumn("stock", gorm.Expr("stock - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %s", model.ErrOutOfStock, lines[i].ProductID)
			}
		}

		order.Lines = lines
		return nil
	})
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindAll(filter OrderFilter) ([]model.Order, error) {
	q := r.db.Model(&model.Order{}).Preload("Lines")

	if filter.Status != "" {
		q = q.Where("orders.status ILIKE ?", "%"+filter.Status+"%")
	}
	if filter.ClientID != nil {
		q = q.Where("orders.client_id = ?", *filter.ClientID)
	}
	if filter.StartDate != nil {
		q = q.Where("DATE(orders.order_date) >= ?", filter.StartDate.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		q = q.Where("DATE(orders.order_date) <= ?", filter.EndDate.Format("2006-01-02"))
	}
	if filter.Section != "" {
		q = q.
			Joins("JOIN order_lines ON order_lines.order_id = orders.id").
			Joins("JOIN products ON products.id = order_lines.product_id").
			Where("products.section ILIKE ?", "%"+filter.Section+"%").
			Distinct("orders.*")
	}

	var orders []model.Order
	err := q.Order("orders.order_date DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(id uuid.UUID, status string) error {
	res := r.db.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepo) ReplaceLines(orderID uuid.UUID, productIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderLine{}).Error; err != nil {
			return err
		}
		for _, pid := range productIDs {
			line := model.OrderLine{OrderID: orderID, ProductID: pid, Quantity: 1}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, "id = ?", id).Error
	})
}
