package events

import (
	"encoding/json"
	"time"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderPaid          = "order.paid"
	TopicOrderStatusChanged = "order.status_changed"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderPaid          = "OrderPaid"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID     string `json:"order_id"`
	UserID      string `json:"user_id"`
	TotalAmount string `json:"total_amount"`
}

type OrderPaidPayload struct {
	OrderID          string `json:"order_id"`
	PaymentReference string `json:"payment_reference"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// PartitionKey keeps all events of one order on the same partition.
func PartitionKey(orderID string) []byte { return []byte(orderID) }

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
