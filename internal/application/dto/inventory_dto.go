package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLotResponse lote de inventario anotado para GET /api/inventory.
// DaysToExpiry y Expired se calculan contra la fecha actual en cada lectura.
type StockLotResponse struct {
	ProductName  string          `json:"product_name"`
	Batch        string          `json:"batch"`
	Expiry       time.Time       `json:"expiry_date"`
	Quantity     int64           `json:"qty"`
	DaysToExpiry int             `json:"days_to_expiry"`
	Expired      bool            `json:"expired"`
	HSN          string          `json:"hsn,omitempty"`
	MRP          decimal.Decimal `json:"mrp"`
	Rate         decimal.Decimal `json:"rate"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	GTIN         string          `json:"gtin,omitempty"`
	UpdatedAt    time.Time       `json:"last_update"`
}

// DeleteStockRequest body para POST /api/delete_stock. Ambas claves son
// obligatorias: el borrado por clave parcial queda rechazado.
type DeleteStockRequest struct {
	ProductName string `json:"product_name"`
	Batch       string `json:"batch"`
}

// UpsertLotInput entrada interna para crear o incrementar un lote
// (ingesta de facturas y siembra; no se expone como endpoint propio).
type UpsertLotInput struct {
	ProductName  string
	Batch        string
	Expiry       time.Time
	Quantity     int64
	HSN          string
	MRP          decimal.Decimal
	Rate         decimal.Decimal
	Manufacturer string
	GTIN         string
}
