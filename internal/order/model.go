package order

import "time"

type Order struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	// Display data joined from users at read time.
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	// TotalAmount is a snapshot computed at placement (NUMERIC -> string).
	TotalAmount      string    `json:"totalAmount"`
	Status           Status    `json:"status"`
	PaymentLinkID    string    `json:"paymentLinkId,omitempty"`
	PaymentReference string    `json:"paymentReference,omitempty"`
	Items            []Item    `json:"items,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Item struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	// ProductID is empty when the product was deleted after the order.
	ProductID    string `json:"productId,omitempty"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`
	// Price is the unit price captured at order time.
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateOrderItem payload of one cart line.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"productId" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity" example:"2"`
}

// CreateOrderRequest payload of order creation.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

// UpdateStatusRequest is the admin status-update payload.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"PROCESSING"`
}

// PaymentLink is what the client needs to pay for an order.
// swagger:model PaymentLink
type PaymentLink struct {
	CheckoutURL   string `json:"checkoutUrl"`
	PaymentLinkID string `json:"paymentLinkId"`
}
