package migrations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run applies the orders schema. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Order header schema mirrors the orders Postgres adapter. The primary key is
// the client-supplied order id, which is what turns a duplicate create into a
// constraint violation instead of an overwrite.
type orderRecord struct {
	OrderID      uuid.UUID         `gorm:"primaryKey;column:order_id;type:uuid"`
	CustomerName string            `gorm:"column:customer_name;size:100;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at"`
	Total        float64           `gorm:"column:total;type:numeric(12,2)"`
	Items        []orderItemRecord `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

// Line item schema. Items are owned by their order: the foreign key cascades
// deletes, and the order_id index serves per-order item lookups.
type orderItemRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;index:idx_order_items_order_id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int32     `gorm:"column:quantity;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }
