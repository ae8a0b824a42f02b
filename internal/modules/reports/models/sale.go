package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a checkout as persisted by the cart/checkout flow
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid" json:"customer_id,omitempty"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SoldAt        time.Time       `gorm:"not null;index" json:"sold_at"`
	Status        string          `gorm:"type:text;not null;default:'pending';index" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod string          `gorm:"type:text" json:"payment_method"`
	Lines         []SaleLine      `gorm:"foreignKey:SaleID" json:"lines,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// SaleLine is one product line of a sale. Subtotal = Quantity × UnitPrice
// is guaranteed by the writer and not re-validated here.
type SaleLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"type:integer;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

// TableName specifies the table name
func (SaleLine) TableName() string {
	return "sale_lines"
}

// SaleStatusCompleted is the only status the reports count
const SaleStatusCompleted = "completed"
