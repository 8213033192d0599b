package models

// CartItem is one offering line in a session's cart. Quantity is a positive
// integer multiplier on Price.
type CartItem struct {
	ID           string  `json:"id"`
	ServiceID    string  `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	ProviderID   string  `json:"providerId"`
	ProviderName string  `json:"providerName"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// Cart is the full cart for one session, authenticated or guest.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
}

// Total returns the cart sum as price times quantity per line.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
