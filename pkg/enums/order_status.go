package enums

// OrderStatus is derived from the delivery dates when orders are read back.
// It is never persisted.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusInTransit  OrderStatus = "in_transit"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	switch o {
	case OrderStatusProcessing, OrderStatusInTransit, OrderStatusDelivered:
		return true
	}
	return false
}
