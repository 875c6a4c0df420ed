package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot representa un lote de medicamento en inventario.
// Clave única: (ProductName, Batch). Quantity nunca es negativa;
// un lote en cero se conserva hasta que se elimine explícitamente.
type StockLot struct {
	ProductName  string
	Batch        string
	Expiry       time.Time // solo la fecha es significativa
	Quantity     int64
	HSN          string
	MRP          decimal.Decimal // precio de venta al público
	Rate         decimal.Decimal // precio de compra según factura
	Manufacturer string
	GTIN         string
	UpdatedAt    time.Time
}
