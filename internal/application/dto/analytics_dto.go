package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas agregadas para GET /api/analytics.
type DashboardResponse struct {
	TotalLots              int64           `json:"total_lots"`
	UnitsInStock           int64           `json:"units_in_stock"`
	ExpiringSoon           int64           `json:"expiring_soon"`
	Expired                int64           `json:"expired"`
	LowStockItems          int64           `json:"low_stock_items"`
	StockValue             decimal.Decimal `json:"stock_value"`
	TotalPatients          int64           `json:"total_patients"`
	PrescriptionsTotal     int64           `json:"prescriptions_total"`
	PrescriptionsDispensed int64           `json:"prescriptions_dispensed"`
	UnitsDispensed         int64           `json:"units_dispensed"`
}
