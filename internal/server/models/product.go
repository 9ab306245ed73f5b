package models

// Product is a catalog item. Price is in minor currency units.
// ImageURL holds the object-storage key of the product image, if any.
type Product struct {
	ID          int64  `json:"product_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}
