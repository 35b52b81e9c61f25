package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
	"github.com/google/uuid"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. It relies on the
// connection having error translation enabled so duplicate-key violations
// surface as gorm.ErrDuplicatedKey.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate header to the orders table.
type orderRecord struct {
	OrderID      uuid.UUID         `gorm:"primaryKey;column:order_id;type:uuid"`
	CustomerName string            `gorm:"column:customer_name;size:100;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at"`
	Total        float64           `gorm:"column:total;type:numeric(12,2)"`
	Items        []orderItemRecord `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord maps one line item to the order_items table.
type orderItemRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;index:idx_order_items_order_id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int32     `gorm:"column:quantity;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Exists reports whether an order row is present. A missing id is not an error.
func (r *Repository) Exists(ctx context.Context, orderID uuid.UUID) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: %w", ports.ErrStorage, err)
	}
	return count > 0, nil
}

// Create inserts the order header and all item rows in a single transaction.
// GORM cascades the association insert, so either every row lands or none do.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order is nil", ports.ErrStorage)
	}
	record := toRecord(order)
	for i := range record.Items {
		if record.Items[i].ID == uuid.Nil {
			record.Items[i].ID = uuid.New()
		}
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrStorage, err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: postgres order repository not configured", ports.ErrStorage)
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		OrderID:      order.OrderID,
		CustomerName: order.CustomerName,
		CreatedAt:    order.CreatedAt,
		Total:        order.Total,
		Items:        make([]orderItemRecord, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		record.Items = append(record.Items, orderItemRecord{
			ID:        item.ID,
			OrderID:   order.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		OrderID:      r.OrderID,
		CustomerName: r.CustomerName,
		CreatedAt:    r.CreatedAt,
		Total:        r.Total,
		Items:        make([]domain.OrderItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return order
}
