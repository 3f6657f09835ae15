package dto

import "time"

// CreateItemRequest input to create an inventory item. Tag fields carry
// display names; unknown values create new taxonomy terms on demand.
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Quantity    *int   `json:"quantity"`
	Comments    string `json:"comments"`
	Owner       string `json:"owner"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
}

// UpdateItemRequest input to update an item. Nil fields are left untouched;
// a rename recomputes the QR URL.
type UpdateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	Comments    *string `json:"comments"`
	Owner       *string `json:"owner"`
	Condition   *string `json:"condition"`
	Location    *string `json:"location"`
}

// PhotoResponse one photo attachment.
type PhotoResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Featured bool   `json:"featured"`
}

// ItemResponse output for an item.
type ItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Comments    string          `json:"comments"`
	QRCodeURL   string          `json:"qr_code_url"`
	Owner       []string        `json:"owner"`
	Condition   []string        `json:"condition"`
	Location    []string        `json:"location"`
	Photos      []PhotoResponse `json:"photos"`
	Migrated    bool            `json:"migrated"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemListResponse listing of items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// SearchItemsRequest filter surface of the public grid.
type SearchItemsRequest struct {
	Search    string `query:"search"`
	Owner     string `query:"owner"`
	Condition string `query:"condition"`
	Location  string `query:"location"`
	PageRequest
}

// TermResponse one taxonomy term.
type TermResponse struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}
