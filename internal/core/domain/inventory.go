package domain

import "time"

// Category groups items and may be nested under a parent category.
// A nil ParentID marks a root category.
type Category struct {
	ID          string    `json:"uuid"`
	ParentID    *string   `json:"parent_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Meta        string    `json:"meta,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item is a stocked thing. A nil CategoryID marks an uncategorised item.
type Item struct {
	ID          string    `json:"uuid"`
	CategoryID  *string   `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Meta        string    `json:"meta,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
