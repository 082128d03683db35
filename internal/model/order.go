package model

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the default order status. Status is an opaque label:
// callers may replace it with any string, nothing validates it.
const StatusPending = "pending"

// Order groups one client's purchase into an ordered set of lines. It
// exclusively owns its lines; deleting an order removes the lines first.
type Order struct {
	Base
	ClientID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_id"`
	Client    *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status    string      `gorm:"type:varchar(50);not null;default:pending" json:"status"`
	OrderDate time.Time   `gorm:"not null;index" json:"order_date"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// OrderLine ties one product to its parent order. Quantity is always 1
// through the public surface; the column keeps it explicit anyway.
type OrderLine struct {
	Base
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
}

// OrderLineResponse is the wire shape of a single line.
type OrderLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// OrderResponse is the wire shape of a fully hydrated order.
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	ClientID  uuid.UUID           `json:"client_id"`
	Status    string              `json:"status"`
	OrderDate time.Time           `json:"order_date"`
	Products  []OrderLineResponse `json:"products"`
}

// ToResponse converts Order to OrderResponse
func (o *Order) ToResponse() OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return OrderResponse{
		ID:        o.ID,
		ClientID:  o.ClientID,
		Status:    o.Status,
		OrderDate: o.OrderDate,
		Products:  lines,
	}
}
