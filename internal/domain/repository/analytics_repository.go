package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardMetrics agrega los contadores que consume el tablero.
type DashboardMetrics struct {
	TotalLots              int64
	UnitsInStock           int64
	ExpiringSoon           int64
	Expired                int64
	LowStockItems          int64
	StockValue             decimal.Decimal // Σ qty × rate (valor de compra)
	TotalPatients          int64
	PrescriptionsTotal     int64
	PrescriptionsDispensed int64
	UnitsDispensed         int64 // unidades salidas por dispensación
}

// AnalyticsRepository consultas de solo lectura para el tablero.
type AnalyticsRepository interface {
	GetDashboardMetrics(ctx context.Context, expiryThresholdDays int, lowStockThreshold int64) (*DashboardMetrics, error)
}
