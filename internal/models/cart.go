package models

// CartItem is a single vehicle-color line in the dealer's cart.
// TotalPrice is computed server-side after every mutation; the client never
// recalculates it locally.
type CartItem struct {
	ID                  int64   `json:"id"`
	VehicleModelColorID int64   `json:"vehicleModelColorId"`
	ModelName           string  `json:"modelName"`
	ColorName           string  `json:"colorName"`
	UnitPrice           float64 `json:"unitPrice"`
	Quantity            int     `json:"quantity"`
	TotalPrice          float64 `json:"totalPrice"`
}

// Cart is the dealer's staging area of selected vehicles prior to order
// creation. One cart per authenticated dealer session. An empty items list
// is a valid, renderable state, not an error.
type Cart struct {
	DealerName   string     `json:"dealerName"`
	UserFullName string     `json:"userFullName"`
	Items        []CartItem `json:"items"`
	CartTotal    float64    `json:"cartTotal"`
}

// IsEmpty reports whether the cart has no line items. A nil cart (no cart
// created yet on the server) counts as empty.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// AddItemRequest is the body for adding a vehicle to the cart.
type AddItemRequest struct {
	VehicleModelColorID int64 `json:"vehicleModelColorId"`
	Quantity            int   `json:"quantity"`
}
