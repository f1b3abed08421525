package order

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// validNextStatuses describes the fulfillment flow:
// pending -> confirmed -> preparing -> ready -> delivered, with
// cancellation possible until preparation is done.
var validNextStatuses = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	_, exists := validNextStatuses[status]
	if !exists {
		return "", fmt.Errorf("unknown order status %s", value)
	}
	return status, nil
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validNextStatuses[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	UID                   string
	CustomerUID           string
	VendorUID             string
	Status                Status
	TotalAmount           int // in cents, including delivery fee
	Currency              string
	DeliveryAddress       string
	DeliveryFee           int // in cents
	EstimatedDeliveryTime time.Time
	CreatedAt             time.Time
	LastModified          *time.Time
}

func (o Order) GetPriceInCurrency() string {
	return fmt.Sprintf("%s %.2f", o.Currency, float64(o.TotalAmount)/100.0)
}

// OrderLine is persisted separately from its order, one record per cart line.
type OrderLine struct {
	UID          string
	OrderUID     string
	FoodItemUID  string
	Name         string
	Quantity     int
	UnitPrice    int // in cents, at the moment of checkout
	Instructions string
}

type OrderWithLines struct {
	Order Order
	Lines []OrderLine
}
