package domain

import (
	"errors"
	"time"
)

// OrderStatus is derived from an order's progress.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

// ActiveOrderStatuses are the statuses counted as "active" on dashboards.
var ActiveOrderStatuses = []OrderStatus{OrderPending, OrderInProgress}

// StatusForProgress maps a progress percentage to its order status.
func StatusForProgress(progress int) OrderStatus {
	switch {
	case progress <= 0:
		return OrderPending
	case progress >= 100:
		return OrderCompleted
	default:
		return OrderInProgress
	}
}

// Order is created by a purchase and never deleted.
type Order struct {
	ID          string      `json:"id" bson:"_id"`
	ClientID    string      `json:"client_id" bson:"client_id"`
	ServiceID   int         `json:"service_id" bson:"service_id"`
	ServiceName string      `json:"service_name" bson:"service_name"`
	Plan        Plan        `json:"plan" bson:"plan"`
	Price       Money       `json:"price" bson:"price"`
	Status      OrderStatus `json:"status" bson:"status"`
	Progress    int         `json:"progress" bson:"progress"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

// SetProgress updates progress and the derived status.
func (o *Order) SetProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	o.Progress = progress
	o.Status = StatusForProgress(progress)
	return nil
}
