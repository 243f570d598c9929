package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a canonical product
type CreateProductRequest struct {
	SKU             string           `json:"sku" binding:"required,min=1,max=50"`
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Category        string           `json:"category" binding:"max=100"`
	BaseCode        string           `json:"base_code" binding:"required,min=1,max=20"`
	PackageType     string           `json:"package_type" binding:"required,oneof=unit display master"`
	UnitsPerDisplay int              `json:"units_per_display" binding:"required,min=1"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
}

// UpdateProductRequest represents a request to update a canonical product
type UpdateProductRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category        *string          `json:"category" binding:"omitempty,max=100"`
	UnitsPerDisplay *int             `json:"units_per_display" binding:"omitempty,min=1"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
}

// ProductResponse represents a canonical product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	BaseCode        string          `json:"base_code"`
	PackageType     string          `json:"package_type"`
	UnitsPerDisplay int             `json:"units_per_display"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.CanonicalProduct) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Category:        p.Category,
		BaseCode:        p.BaseCode,
		PackageType:     string(p.PackageType),
		UnitsPerDisplay: p.UnitsPerDisplay,
		UnitPrice:       p.UnitPrice,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}

// ProductListFilter carries list query options from the API layer
type ProductListFilter struct {
	Search   string
	Category string
	Active   *bool
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

// CreateEquivalenceRequest represents a request to create a mapping
type CreateEquivalenceRequest struct {
	Channel      string `json:"channel" binding:"required,oneof=storefront marketplace billing"`
	ChannelSKU   string `json:"channel_sku" binding:"required,min=1,max=100"`
	CanonicalSKU string `json:"canonical_sku" binding:"required,min=1,max=50"`
	Priority     int    `json:"priority"`
}

// EquivalenceResponse represents a mapping in API responses
type EquivalenceResponse struct {
	ID           uuid.UUID `json:"id"`
	Channel      string    `json:"channel"`
	ChannelSKU   string    `json:"channel_sku"`
	CanonicalSKU string    `json:"canonical_sku"`
	Priority     int       `json:"priority"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToEquivalenceResponse converts a domain mapping to a response DTO
func ToEquivalenceResponse(m *catalog.EquivalenceMapping) *EquivalenceResponse {
	return &EquivalenceResponse{
		ID:           m.ID,
		Channel:      string(m.Channel),
		ChannelSKU:   m.ChannelSKU,
		CanonicalSKU: m.CanonicalSKU,
		Priority:     m.Priority,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CreateCajaRequest represents a request to register a caja code
type CreateCajaRequest struct {
	CaseSKU      string          `json:"case_sku" binding:"required,min=1,max=100"`
	BaseSKU      string          `json:"base_sku" binding:"required,min=1,max=50"`
	UnitsPerCase decimal.Decimal `json:"units_per_case" binding:"required"`
	Description  string          `json:"description" binding:"max=200"`
}

// CajaResponse represents a caja code in API responses
type CajaResponse struct {
	ID           uuid.UUID       `json:"id"`
	CaseSKU      string          `json:"case_sku"`
	BaseSKU      string          `json:"base_sku"`
	UnitsPerCase decimal.Decimal `json:"units_per_case"`
	Description  string          `json:"description"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToCajaResponse converts a domain caja code to a response DTO
func ToCajaResponse(c *catalog.CajaCode) *CajaResponse {
	return &CajaResponse{
		ID:           c.ID,
		CaseSKU:      c.CaseSKU,
		BaseSKU:      c.BaseSKU,
		UnitsPerCase: c.UnitsPerCase,
		Description:  c.Description,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
