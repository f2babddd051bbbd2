// Package orderrepo maps the order aggregate onto the orders and order_items
// tables.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Items live in order_items and are
// never updated after insert.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status       int             `gorm:"type:smallint;index"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Delivery     GeoPointDTO     `gorm:"embedded;embeddedPrefix:delivery_"`
	CourierLat   *float64
	CourierLon   *float64
	CreatedAt    time.Time
	Version      int64
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO is an embedded latitude/longitude pair.
type GeoPointDTO struct {
	Lat float64
	Lon float64
}

// OrderItemDTO is one line of an order. Position keeps the line order the
// customer submitted.
type OrderItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Position  int
	FoodID    uuid.UUID `gorm:"type:uuid"`
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	dto := OrderDTO{
		ID:           s.ID.Raw(),
		CustomerID:   s.CustomerID.Raw(),
		RestaurantID: s.RestaurantID.Raw(),
		Status:       int(s.Status),
		TotalPrice:   s.TotalPrice,
		Delivery: GeoPointDTO{
			Lat: s.DeliveryLocation.Lat(),
			Lon: s.DeliveryLocation.Lon(),
		},
		CreatedAt: s.CreatedAt,
		Version:   s.Version,
		Items:     make([]OrderItemDTO, 0, len(s.Items)),
	}
	dto.setMutable(s)

	for i, item := range s.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			FoodID:    item.FoodID().Raw(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}
	return dto
}

// setMutable copies the fields a conditional update may change.
func (dto *OrderDTO) setMutable(s order.Snapshot) {
	dto.Status = int(s.Status)
	dto.Version = s.Version

	dto.CourierID = nil
	if s.CourierID != nil {
		raw := s.CourierID.Raw()
		dto.CourierID = &raw
	}

	dto.CourierLat, dto.CourierLon = nil, nil
	if s.CourierLocation != nil {
		lat, lon := s.CourierLocation.Lat(), s.CourierLocation.Lon()
		dto.CourierLat, dto.CourierLon = &lat, &lon
	}
}

// mutableColumns lists the columns written by a conditional update.
func (dto *OrderDTO) mutableColumns() map[string]any {
	return map[string]any{
		"status":      dto.Status,
		"courier_id":  dto.CourierID,
		"courier_lat": dto.CourierLat,
		"courier_lon": dto.CourierLon,
		"version":     dto.Version,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	delivery, err := kernel.NewGeoPoint(dto.Delivery.Lat, dto.Delivery.Lon)
	if err != nil {
		return nil, err
	}

	var courierLocation *kernel.GeoPoint
	if dto.CourierLat != nil && dto.CourierLon != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.CourierLat, *dto.CourierLon)
		if locErr != nil {
			return nil, locErr
		}
		courierLocation = &loc
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		foodID, foodErr := kernel.UUIDFromBytes(itemDTO.FoodID[:])
		if foodErr != nil {
			return nil, foodErr
		}
		item, itemErr := order.NewItem(foodID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               id,
		CustomerID:       customerID,
		RestaurantID:     restaurantID,
		CourierID:        courierID,
		Status:           order.Status(dto.Status),
		Items:            items,
		TotalPrice:       dto.TotalPrice,
		DeliveryLocation: delivery,
		CourierLocation:  courierLocation,
		CreatedAt:        dto.CreatedAt,
		Version:          dto.Version,
	})
}
