package models

// Category is a top-level grouping of marketplace services.
// Categories are soft-deactivated by admins, never cascaded.
type Category struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string `bson:"icon,omitempty" json:"icon,omitempty"`
	IsActive    bool   `bson:"is_active" json:"is_active"`
}

// Subcategory belongs to exactly one Category and carries the price band
// every provider offering under it must satisfy.
type Subcategory struct {
	ID          string  `bson:"id" json:"id"`
	CategoryID  string  `bson:"category_id" json:"category_id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	MinPrice    float64 `bson:"min_price" json:"min_price"`
	MaxPrice    float64 `bson:"max_price" json:"max_price"`
	IsActive    bool    `bson:"is_active" json:"is_active"`
}
