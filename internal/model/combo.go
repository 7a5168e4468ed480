package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Combo represents a gift combo sold in the storefront.
// Prices are stored in thousand VND.
type Combo struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Price         float64         `json:"price" db:"price"`
	OriginalPrice float64         `json:"original_price" db:"original_price"`
	Image         string          `json:"image" db:"image"`
	Badge         *string         `json:"badge,omitempty" db:"badge"` // HOT, NEW, SALE, LIMITED
	Discount      int             `json:"discount" db:"discount"`
	Category      string          `json:"category" db:"category"`
	Occasion      string          `json:"occasion" db:"occasion"`
	PriceRange    *string         `json:"price_range,omitempty" db:"price_range"`
	Description   *string         `json:"description,omitempty" db:"description"`
	Features      JSONArray       `json:"features,omitempty" db:"features"` // lowercase canonical tags
	Includes      JSONArray       `json:"includes,omitempty" db:"includes"`
	Gallery       JSONArray       `json:"gallery,omitempty" db:"gallery"`
	Embedding     pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// ComboFilter is the structured predicate passed to the combo lookup.
// Nil fields are unconstrained; both price bounds are applied independently,
// so an inverted range simply matches nothing.
type ComboFilter struct {
	Occasion *string
	PriceMin *float64
	PriceMax *float64
	Features []string
}

// ComboInput carries admin-supplied combo fields for create/update
type ComboInput struct {
	Name          string   `json:"name" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice float64  `json:"original_price" binding:"required,gt=0"`
	Image         string   `json:"image" binding:"required"`
	Badge         *string  `json:"badge,omitempty" binding:"omitempty,oneof=HOT NEW SALE LIMITED"`
	Discount      int      `json:"discount" binding:"gte=0,lte=100"`
	Category      string   `json:"category" binding:"required"`
	Occasion      string   `json:"occasion" binding:"required"`
	PriceRange    *string  `json:"price_range,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Features      []string `json:"features"`
	Includes      []string `json:"includes"`
	Gallery       []string `json:"gallery"`
}

// ComboListParams are the accepted query parameters for the catalog listing
type ComboListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Occasion string
	Badge    string
	MinPrice float64
	MaxPrice float64
	SortBy   string // price_low, price_high, newest
}

// ComboListResponse is a paginated catalog page
type ComboListResponse struct {
	Data       []Combo `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}

// JSONArray represents a JSONB array-of-strings column
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
