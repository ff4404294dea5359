package product

import "time"

const (
	StatusActive  = "ACTIVE"
	StatusHide    = "HIDE"
	StatusDeleted = "DELETED"
)

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Price is stored as a string to avoid rounding errors (NUMERIC in Postgres)
	Price          string    `json:"price"`
	Quantity       int       `json:"quantity"`
	Status         string    `json:"status"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	ThumbnailImage string    `json:"thumbnailImage,omitempty"`
	CategoryID     string    `json:"categoryId,omitempty"`
	CategoryName   string    `json:"categoryName,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusHide || s == StatusDeleted
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name           string `json:"name" example:"Celadon tea bowl"`
	Description    string `json:"description" example:"Wood-fired, 180ml"`
	Price          string `json:"price" example:"250000"`
	Quantity       int    `json:"quantity" example:"10"`
	Status         string `json:"status" example:"ACTIVE"`
	ImageURL       string `json:"imageUrl"`
	ThumbnailImage string `json:"thumbnailImage"`
	CategoryID     string `json:"categoryId"`
}

// UpdateProductRequest payload of partial update. Pointer fields distinguish
// "omitted" from zero values.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Price          *string `json:"price"`
	Quantity       *int    `json:"quantity"`
	Status         *string `json:"status"`
	ImageURL       *string `json:"imageUrl"`
	ThumbnailImage *string `json:"thumbnailImage"`
	CategoryID     *string `json:"categoryId"`
}
